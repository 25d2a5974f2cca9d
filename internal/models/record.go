// Package models defines data structures shared by the exporter pipeline.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is returned for an sku that is neither a string nor a number.
var ErrInvalidIdentifier = errors.New("sku must be a string or a number")

// FieldKind classifies which product field a translation record carries.
type FieldKind int

// Recognized field kinds. KindUnknown records are ignored by the aggregator.
const (
	KindUnknown FieldKind = iota
	KindTitle
	KindBody
)

// String returns the canonical key of the kind.
func (k FieldKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindBody:
		return "body"
	default:
		return "unknown"
	}
}

// TranslationRecord is one (identifier, field key, text) entry of the locale export.
type TranslationRecord struct {
	Identifier     string `json:"sku"`
	FieldKey       string `json:"key"`
	TranslatedText string `json:"translation"`
}

// UnmarshalJSON decodes a record, accepting a numeric sku as its literal text.
// A null or missing sku decodes to "".
func (r *TranslationRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Identifier     json.RawMessage `json:"sku"`
		FieldKey       string          `json:"key"`
		TranslatedText string          `json:"translation"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := identifierText(raw.Identifier)
	if err != nil {
		return err
	}

	*r = TranslationRecord{Identifier: id, FieldKey: raw.FieldKey, TranslatedText: raw.TranslatedText}

	return nil
}

func identifierText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)

	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}

		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidIdentifier, raw)
	}

	return n.String(), nil
}

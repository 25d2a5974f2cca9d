package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTranslationRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TranslationRecord
	}{
		{
			name:  "string sku",
			input: `{"sku": "A1", "key": "title", "translation": "Med", "locale": "cs"}`,
			want:  TranslationRecord{Identifier: "A1", FieldKey: "title", TranslatedText: "Med"},
		},
		{
			name:  "numeric sku",
			input: `{"sku": 84012, "key": "title", "translation": "Sůl"}`,
			want:  TranslationRecord{Identifier: "84012", FieldKey: "title", TranslatedText: "Sůl"},
		},
		{
			name:  "numeric sku keeps literal",
			input: `{"sku": 1.50, "key": "body_html", "translation": ""}`,
			want:  TranslationRecord{Identifier: "1.50", FieldKey: "body_html"},
		},
		{
			name:  "null sku",
			input: `{"sku": null, "key": "title", "translation": "orphan"}`,
			want:  TranslationRecord{FieldKey: "title", TranslatedText: "orphan"},
		},
		{
			name:  "missing sku",
			input: `{"key": "title", "translation": "orphan"}`,
			want:  TranslationRecord{FieldKey: "title", TranslatedText: "orphan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TranslationRecord
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal returned unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslationRecord_UnmarshalJSON_InvalidIdentifier(t *testing.T) {
	for _, input := range []string{
		`{"sku": true, "key": "title"}`,
		`{"sku": {"id": 1}, "key": "title"}`,
	} {
		var got TranslationRecord

		err := json.Unmarshal([]byte(input), &got)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("Unmarshal(%s) error = %v, want ErrInvalidIdentifier", input, err)
		}
	}
}

func TestTranslationRecord_UnmarshalJSON_Array(t *testing.T) {
	var got []TranslationRecord

	input := `[{"sku": 7, "key": "title", "translation": "a"}, {"sku": "7", "key": "body", "translation": "b"}]`
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 || got[0].Identifier != "7" || got[1].Identifier != "7" {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

package normalizer

import (
	"errors"
	"fmt"
	"strings"
)

// Product observations. None of them drops a product.
var (
	ErrMissingTitle  = errors.New("product has no title")
	ErrMissingMarkup = errors.New("product has no body markup")
	ErrNoBlocks      = errors.New("body markup has no paragraph blocks")
	ErrNoNutrients   = errors.New("no nutrient pairs found")
)

// Validator inspects transformed products and reports what is missing.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Inspect returns one wrapped observation per gap found in p.
func (v *Validator) Inspect(p Product) []error {
	var warnings []error

	if strings.TrimSpace(p.Draft.Title) == "" {
		warnings = append(warnings, fmt.Errorf("%w: sku %s", ErrMissingTitle, p.Draft.Identifier))
	}

	switch {
	case strings.TrimSpace(p.Draft.Markup) == "":
		warnings = append(warnings, fmt.Errorf("%w: sku %s", ErrMissingMarkup, p.Draft.Identifier))
	case p.Blocks == 0:
		warnings = append(warnings, fmt.Errorf("%w: sku %s", ErrNoBlocks, p.Draft.Identifier))
	}

	if len(p.Nutrients) == 0 {
		warnings = append(warnings, fmt.Errorf("%w: sku %s", ErrNoNutrients, p.Draft.Identifier))
	}

	return warnings
}

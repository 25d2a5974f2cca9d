// Package validator checks rendered catalog previews.
package validator

import (
	"errors"
	"fmt"
	"slices"

	"catexport/internal/formatter"
	"catexport/internal/models"
	"catexport/pkg/metadata"
	"catexport/pkg/utils"
)

// Validation errors.
var (
	ErrNoTable            = errors.New("no table found")
	ErrHeaderMismatch     = errors.New("table header does not match catalog columns")
	ErrColumnCount        = errors.New("unexpected column count")
	ErrMissingSKU         = errors.New("first row has no SKU")
	ErrContinuationFields = errors.New("continuation row carries product fields")
)

// productColumns are the columns only the first row of a product may fill.
var productColumns = models.Columns[1:8]

// ValidationError represents a validation error with context.
type ValidationError struct {
	Err    error
	Field  string
	Value  string
	Line   int
	Column int
}

// Error implements error.
func (e ValidationError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the sentinel error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRows   int
	ValidRows   int
	InvalidRows int
	Products    int
}

// PreviewValidator validates the table of a markdown preview.
type PreviewValidator struct {
	columns []string
	strings *utils.StringHelper
}

// NewPreviewValidator creates a validator for the standard catalog columns.
func NewPreviewValidator() *PreviewValidator {
	return &PreviewValidator{columns: models.Columns, strings: utils.NewStringHelper()}
}

// ValidatePreview checks the table layout: header, column count, and that
// product-level fields appear only on the first row of each product.
func (v *PreviewValidator) ValidatePreview(content string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	_, clean := metadata.Extract(content)

	table, lines := formatter.ParseTable(clean)
	if len(table) == 0 {
		result.fail(ValidationError{Err: ErrNoTable})

		return result
	}

	if !slices.Equal(table[0], v.columns) {
		result.fail(ValidationError{Err: ErrHeaderMismatch, Line: lines[0]})

		return result
	}

	for i, row := range table[1:] {
		line := lines[i+1]
		result.Stats.TotalRows++

		errs := v.validateRow(row, line, i == 0)
		if len(errs) > 0 {
			result.Stats.InvalidRows++

			for _, e := range errs {
				result.fail(e)
			}

			continue
		}

		result.Stats.ValidRows++

		if row[0] != "" {
			result.Stats.Products++
		}

		if row[8] == "" && row[9] != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: quantity %q without nutrient", line, row[9]))
		}
	}

	return result
}

// ValidateIntegrity checks the digest in the metadata block.
func (v *PreviewValidator) ValidateIntegrity(content string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	valid, err := metadata.Verify(content)
	if !valid {
		result.fail(ValidationError{Err: fmt.Errorf("integrity check failed: %w", err)})
	}

	return result
}

// validateRow validates a single table row.
func (v *PreviewValidator) validateRow(row []string, line int, first bool) []ValidationError {
	if len(row) != len(v.columns) {
		return []ValidationError{{
			Err:  fmt.Errorf("%w: expected %d, got %d", ErrColumnCount, len(v.columns), len(row)),
			Line: line,
		}}
	}

	if row[0] != "" {
		return nil
	}

	if first {
		return []ValidationError{{Err: ErrMissingSKU, Line: line, Column: 1}}
	}

	var errs []ValidationError

	for i, name := range productColumns {
		if value := row[i+1]; value != "" {
			errs = append(errs, ValidationError{
				Err:    ErrContinuationFields,
				Field:  name,
				Value:  v.strings.TruncateString(value, 40),
				Line:   line,
				Column: i + 2,
			})
		}
	}

	return errs
}

func (r *ValidationResult) fail(e ValidationError) {
	r.IsValid = false
	r.Errors = append(r.Errors, e)
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Invalid: %d | Products: %d | Warnings: %d",
		status,
		r.Stats.TotalRows,
		r.Stats.ValidRows,
		r.Stats.InvalidRows,
		r.Stats.Products,
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors() {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Println("❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Line == 0 {
			fmt.Printf("  %v\n", err.Err)

			continue
		}

		fmt.Printf("  Line %d, Col %d", err.Line, err.Column)

		if err.Field != "" {
			fmt.Printf(" [%s]", err.Field)
		}

		fmt.Printf(": %v\n", err.Err)

		if err.Value != "" {
			fmt.Printf("    Found: %q\n", err.Value)
		}
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Println("⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Printf("  %s\n", warn)
	}
}

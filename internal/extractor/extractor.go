package extractor

import (
	"strings"

	"catexport/internal/markup"
	"catexport/internal/models"
)

// ExtractLabeledField returns the trimmed text that follows the lead-in of the first
// block whose label contains any of labels. Plain blocks are never matched.
func ExtractLabeledField(blocks []markup.Block, labels []string) string {
	for _, b := range blocks {
		if !b.HasLead {
			continue
		}

		if markup.ContainsAny(b.Label(), labels) {
			return strings.TrimSpace(b.Rest)
		}
	}

	return ""
}

// ExtractDescription returns the full trimmed text of the first block that is not
// labeled with one of markers. The lead-in of a returned block is kept.
func ExtractDescription(blocks []markup.Block, markers []string) string {
	for _, b := range blocks {
		if b.HasLead && markup.ContainsAny(b.Label(), markers) {
			continue
		}

		return strings.TrimSpace(b.Text)
	}

	return ""
}

// Extractor applies a LabelTable to product markup.
type Extractor struct {
	table LabelTable
}

// NewExtractor creates an extractor for table.
func NewExtractor(table LabelTable) *Extractor {
	return &Extractor{table: table}
}

// Table returns the label table in use.
func (e *Extractor) Table() LabelTable {
	return e.table
}

// Extract parses doc once and fills every field of the table.
func (e *Extractor) Extract(doc string) models.ExtractedFields {
	return e.ExtractBlocks(markup.Blocks(doc))
}

// ExtractBlocks fills every field of the table from already parsed blocks.
func (e *Extractor) ExtractBlocks(blocks []markup.Block) models.ExtractedFields {
	fields := models.ExtractedFields{
		Description: ExtractDescription(blocks, e.table.DescriptionMarkers),
	}

	for _, rule := range e.table.Rules {
		value := ExtractLabeledField(blocks, rule.Labels)

		switch rule.Field {
		case FieldAllergen:
			fields.Allergen = value
		case FieldIngredients:
			fields.Ingredients = value
		case FieldStorage:
			fields.Storage = value
		case FieldWeight:
			fields.Weight = value
		case FieldOrigin:
			fields.Origin = value
		case FieldNutrients:
			fields.NutrientBlock = value
		}
	}

	return fields
}

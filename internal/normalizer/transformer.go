package normalizer

import (
	"catexport/internal/extractor"
	"catexport/internal/markup"
	"catexport/internal/models"
	"catexport/internal/nutrient"
	"catexport/internal/rows"
)

// Product is a draft with everything derived from it.
type Product struct {
	Draft     models.ProductDraft
	Fields    models.ExtractedFields
	Nutrients []models.NutrientPair
	Blocks    int
}

// Rows flattens the product into output rows.
func (p Product) Rows() []models.OutputRow {
	return rows.Build(models.NewProductFields(p.Draft, p.Fields), p.Nutrients)
}

// Transformer turns product drafts into products.
type Transformer struct {
	extractor *extractor.Extractor
}

// NewTransformer creates a transformer with the default label table.
func NewTransformer() *Transformer {
	return NewTransformerWithTable(extractor.DefaultLabelTable())
}

// NewTransformerWithTable creates a transformer for a custom label table.
func NewTransformerWithTable(table extractor.LabelTable) *Transformer {
	return &Transformer{
		extractor: extractor.NewExtractor(table),
	}
}

// Transform parses the draft markup once, extracts the labeled fields and splits
// the nutrient block.
func (t *Transformer) Transform(draft models.ProductDraft) Product {
	blocks := markup.Blocks(draft.Markup)
	fields := t.extractor.ExtractBlocks(blocks)

	return Product{
		Draft:     draft,
		Fields:    fields,
		Nutrients: nutrient.Split(fields.NutrientBlock),
		Blocks:    len(blocks),
	}
}

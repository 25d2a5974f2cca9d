package models

// Columns is the fixed output schema, in order.
var Columns = []string{
	"SKU",
	"Title",
	"Description",
	"Allergen",
	"Ingredients",
	"Storage",
	"Weight",
	"Origin",
	"Nutrient",
	"Quantity",
}

// OutputRow is one flat row of the exported table.
type OutputRow struct {
	ProductFields
	Nutrient string
	Quantity string
}

// Values returns the row's cells in Columns order.
func (r OutputRow) Values() []string {
	return []string{
		r.SKU,
		r.Title,
		r.Description,
		r.Allergen,
		r.Ingredients,
		r.Storage,
		r.Weight,
		r.Origin,
		r.Nutrient,
		r.Quantity,
	}
}

// RowFromValues rebuilds a row from cells in Columns order. Missing cells are left empty.
func RowFromValues(values []string) OutputRow {
	cell := func(i int) string {
		if i < len(values) {
			return values[i]
		}

		return ""
	}

	return OutputRow{
		ProductFields: ProductFields{
			SKU:         cell(0),
			Title:       cell(1),
			Description: cell(2),
			Allergen:    cell(3),
			Ingredients: cell(4),
			Storage:     cell(5),
			Weight:      cell(6),
			Origin:      cell(7),
		},
		Nutrient: cell(8),
		Quantity: cell(9),
	}
}

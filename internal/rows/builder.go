// Package rows flattens a product and its nutrient pairs into output rows.
package rows

import "catexport/internal/models"

// Build returns max(1, len(pairs)) rows. The first row carries parent and the first
// pair; later rows carry only their own pair.
func Build(parent models.ProductFields, pairs []models.NutrientPair) []models.OutputRow {
	if len(pairs) == 0 {
		return []models.OutputRow{{ProductFields: parent}}
	}

	out := make([]models.OutputRow, len(pairs))

	for i, p := range pairs {
		out[i] = models.OutputRow{Nutrient: p.Name, Quantity: p.Quantity}
	}

	out[0].ProductFields = parent

	return out
}

package models

// ProductDraft is the per-identifier state folded from translation records.
type ProductDraft struct {
	Identifier string `json:"sku"`
	Title      string `json:"title"`
	Markup     string `json:"markup"`
}

// ExtractedFields holds the labeled sections recovered from a product's markup.
type ExtractedFields struct {
	Description   string `json:"description"`
	Allergen      string `json:"allergen"`
	Ingredients   string `json:"ingredients"`
	Storage       string `json:"storage"`
	Weight        string `json:"weight"`
	Origin        string `json:"origin"`
	NutrientBlock string `json:"nutrientBlock"`
}

// NutrientPair is a single nutrient name with its quantity text (may be empty).
type NutrientPair struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// ProductFields are the product-level columns carried by the first row of a product.
type ProductFields struct {
	SKU         string
	Title       string
	Description string
	Allergen    string
	Ingredients string
	Storage     string
	Weight      string
	Origin      string
}

// NewProductFields combines a draft with the fields extracted from its markup.
func NewProductFields(draft ProductDraft, fields ExtractedFields) ProductFields {
	return ProductFields{
		SKU:         draft.Identifier,
		Title:       draft.Title,
		Description: fields.Description,
		Allergen:    fields.Allergen,
		Ingredients: fields.Ingredients,
		Storage:     fields.Storage,
		Weight:      fields.Weight,
		Origin:      fields.Origin,
	}
}

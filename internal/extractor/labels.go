// Package extractor recovers labeled product fields from paragraph blocks.
package extractor

// Field names a product field recovered from a labeled block.
type Field string

// Labeled fields.
const (
	FieldAllergen    Field = "allergen"
	FieldIngredients Field = "ingredients"
	FieldStorage     Field = "storage"
	FieldWeight      Field = "weight"
	FieldOrigin      Field = "origin"
	FieldNutrients   Field = "nutrients"
)

// Rule binds a field to its acceptable lead-in labels, in order of preference.
type Rule struct {
	Field  Field
	Labels []string
}

// LabelTable is the declarative mapping from fields to label synonyms, plus the
// markers that disqualify a block from being the description.
type LabelTable struct {
	Rules              []Rule
	DescriptionMarkers []string
}

// DefaultLabelTable returns the labels used by the Czech catalog export.
func DefaultLabelTable() LabelTable {
	return LabelTable{
		Rules: []Rule{
			{Field: FieldAllergen, Labels: []string{"Allergen"}},
			{Field: FieldIngredients, Labels: []string{"Složení", "Ingredience"}},
			{Field: FieldStorage, Labels: []string{"Skladování"}},
			{Field: FieldWeight, Labels: []string{"Hmotnost"}},
			{Field: FieldOrigin, Labels: []string{"Původ"}},
			{Field: FieldNutrients, Labels: []string{"Živiny"}},
		},
		DescriptionMarkers: []string{
			"živiny", "složení", "ingredience", "skladování", "hmotnost", "původ", "allergen",
		},
	}
}

// Labels returns the synonyms configured for f, or nil.
func (t LabelTable) Labels(f Field) []string {
	for _, r := range t.Rules {
		if r.Field == f {
			return r.Labels
		}
	}

	return nil
}

// With returns a copy of t where f uses labels. Unknown fields are appended.
func (t LabelTable) With(f Field, labels []string) LabelTable {
	out := LabelTable{
		Rules:              make([]Rule, 0, len(t.Rules)+1),
		DescriptionMarkers: append([]string(nil), t.DescriptionMarkers...),
	}

	replaced := false

	for _, r := range t.Rules {
		if r.Field == f {
			r = Rule{Field: f, Labels: append([]string(nil), labels...)}
			replaced = true
		}

		out.Rules = append(out.Rules, r)
	}

	if !replaced {
		out.Rules = append(out.Rules, Rule{Field: f, Labels: append([]string(nil), labels...)})
	}

	return out
}

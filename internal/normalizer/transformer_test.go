package normalizer

import (
	"testing"

	"catexport/internal/models"
)

func TestNewTransformer(t *testing.T) {
	tr := NewTransformer()
	if tr == nil {
		t.Fatal("NewTransformer returned nil")
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer()

	product := tr.Transform(models.ProductDraft{
		Identifier: "OIL-1",
		Title:      "Kokosový olej",
		Markup: `<p>Panenský kokosový olej.</p>` +
			`<p><strong>INGREDIENCE</strong> kokosový olej</p>` +
			`<p><strong>Původ:</strong> Srí Lanka</p>` +
			`<p><strong>Živiny</strong> Celkové Tuky(99.7g),Sacharidy(0g), Cukr(0g), Vitamin A(700), Bílkoviny(0g)</p>`,
	})

	if product.Blocks != 4 {
		t.Errorf("Blocks = %d, want 4", product.Blocks)
	}

	if product.Fields.Description != "Panenský kokosový olej." {
		t.Errorf("Description = %q", product.Fields.Description)
	}

	if product.Fields.Ingredients != "kokosový olej" {
		t.Errorf("Ingredients = %q", product.Fields.Ingredients)
	}

	if product.Fields.Origin != "Srí Lanka" {
		t.Errorf("Origin = %q", product.Fields.Origin)
	}

	if len(product.Nutrients) != 5 {
		t.Fatalf("Nutrients = %d, want 5", len(product.Nutrients))
	}

	rows := product.Rows()
	if len(rows) != 5 {
		t.Fatalf("Rows = %d, want 5", len(rows))
	}

	if rows[0].SKU != "OIL-1" || rows[0].Nutrient != "Celkové Tuky" || rows[0].Quantity != "99.7g" {
		t.Errorf("row 0 = %+v", rows[0])
	}

	if rows[4].SKU != "" || rows[4].Nutrient != "Bílkoviny" {
		t.Errorf("row 4 = %+v", rows[4])
	}
}

func TestTransformer_Transform_EmptyMarkup(t *testing.T) {
	tr := NewTransformer()

	product := tr.Transform(models.ProductDraft{Identifier: "X", Title: "Only title"})

	rows := product.Rows()
	if len(rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(rows))
	}

	want := models.OutputRow{ProductFields: models.ProductFields{SKU: "X", Title: "Only title"}}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
}

package normalizer

import (
	"context"
	"errors"
	"testing"

	"catexport/internal/catalog"
	"catexport/internal/extractor"
	"catexport/internal/models"
)

const testSKU = "MED-250"

func testRecords() []models.TranslationRecord {
	return []models.TranslationRecord{
		{Identifier: testSKU, FieldKey: "title", TranslatedText: "Květový med"},
		{Identifier: testSKU, FieldKey: "body_html", TranslatedText: `<p>Med z jižních Čech.</p>` +
			`<p><strong>Hmotnost:</strong> 250 g</p>` +
			`<p><strong>Živiny:</strong> Energie(1380kJ), Cukr(80g)</p>`},
		{Identifier: "SUL-1", FieldKey: "title", TranslatedText: "Mořská sůl"},
		{Identifier: "SUL-1", FieldKey: "price", TranslatedText: "39"},
		{Identifier: "", FieldKey: "title", TranslatedText: "orphan"},
	}
}

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(nil)
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor(nil)

	var out Rows

	summary, err := p.Process(context.Background(), testRecords(), &out)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if len(out) != 3 {
		t.Fatalf("rows = %d, want 3", len(out))
	}

	first := out[0]
	if first.SKU != testSKU || first.Title != "Květový med" || first.Weight != "250 g" {
		t.Errorf("first row = %+v", first)
	}

	if first.Nutrient != "Energie" || first.Quantity != "1380kJ" {
		t.Errorf("first nutrient = %s(%s), want Energie(1380kJ)", first.Nutrient, first.Quantity)
	}

	if out[1].SKU != "" || out[1].Nutrient != "Cukr" || out[1].Quantity != "80g" {
		t.Errorf("second row = %+v", out[1])
	}

	salt := out[2]
	if salt.SKU != "SUL-1" || salt.Title != "Mořská sůl" || salt.Description != "" || salt.Nutrient != "" {
		t.Errorf("salt row = %+v", salt)
	}

	want := Summary{Records: 5, MissingIdentifier: 1, UnknownKey: 1, Products: 2, Rows: 3, Warnings: 2}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestProcessor_Process_Idempotent(t *testing.T) {
	p := NewProcessor(nil)

	var first, second Rows

	if _, err := p.Process(context.Background(), testRecords(), &first); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Process(context.Background(), testRecords(), &second); err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write(...models.OutputRow) error { return f.err }

func TestProcessor_Process_WriteError(t *testing.T) {
	p := NewProcessor(nil)
	boom := errors.New("disk full")

	summary, err := p.Process(context.Background(), testRecords(), failingWriter{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Process error = %v, want %v", err, boom)
	}

	if summary.Rows != 0 {
		t.Errorf("rows = %d, want 0", summary.Rows)
	}
}

func TestProcessor_CustomConfig(t *testing.T) {
	table := extractor.DefaultLabelTable().With(extractor.FieldWeight, []string{"Weight"})
	resolver := catalog.NewKeyResolver([]string{"name"}, []string{"html"})
	p := NewProcessorWithConfig(table, resolver, nil)

	var out Rows

	_, err := p.Process(context.Background(), []models.TranslationRecord{
		{Identifier: "X", FieldKey: "name", TranslatedText: "Tea"},
		{Identifier: "X", FieldKey: "html", TranslatedText: `<p><b>WEIGHT</b> 50 g</p>`},
	}, &out)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 1 || out[0].Title != "Tea" || out[0].Weight != "50 g" {
		t.Errorf("rows = %+v", out)
	}
}

// cancelWriter cancels the run after the first product is written.
type cancelWriter struct {
	rows   Rows
	cancel context.CancelFunc
}

func (c *cancelWriter) Write(rows ...models.OutputRow) error {
	c.cancel()

	return c.rows.Write(rows...)
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	p := NewProcessor(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out Rows

	summary, err := p.Process(ctx, testRecords(), &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process error = %v, want context.Canceled", err)
	}

	if len(out) != 0 || summary.Products != 0 {
		t.Errorf("rows = %d, products = %d, want none", len(out), summary.Products)
	}
}

func TestProcessor_Process_StopsBetweenProducts(t *testing.T) {
	p := NewProcessor(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &cancelWriter{cancel: cancel}

	summary, err := p.Process(ctx, testRecords(), w)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process error = %v, want context.Canceled", err)
	}

	if summary.Products != 1 {
		t.Errorf("products = %d, want 1", summary.Products)
	}

	for _, r := range w.rows {
		if r.SKU == "SUL-1" {
			t.Errorf("second product written after cancel: %+v", r)
		}
	}
}

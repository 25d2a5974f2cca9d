package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catexport/internal/formatter"
	"catexport/internal/models"
	"catexport/pkg/metadata"
)

// PreviewWriter keeps the first rows of the output and writes them as a signed
// markdown table on Close.
type PreviewWriter struct {
	path     string
	source   string
	limit    int
	rows     []models.OutputRow
	total    int
	products int
}

// NewPreviewWriter creates a preview of at most limit rows at path.
func NewPreviewWriter(path string, limit int, source string) *PreviewWriter {
	return &PreviewWriter{path: path, limit: limit, source: source}
}

// Write counts rows and keeps those within the limit.
func (p *PreviewWriter) Write(rows ...models.OutputRow) error {
	for _, r := range rows {
		p.total++

		if r.SKU != "" {
			p.products++
		}

		if len(p.rows) < p.limit {
			p.rows = append(p.rows, r)
		}
	}

	return nil
}

// Close renders and writes the preview file.
func (p *PreviewWriter) Close() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}

	content := RenderPreview(p.rows, p.total, p.products, p.source)
	if err := os.WriteFile(p.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	return nil
}

// Abort drops the kept rows without writing a preview.
func (p *PreviewWriter) Abort() error {
	p.rows = nil

	return nil
}

// RenderPreview formats rows as a markdown document with a metadata block.
// total and products describe the whole output, not just the rows shown.
func RenderPreview(rows []models.OutputRow, total, products int, source string) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Values()
	}

	var sb strings.Builder

	sb.WriteString("# Catalog preview\n\n")
	fmt.Fprintf(&sb, "Showing %d of %d rows (%d products).\n\n", len(rows), total, products)
	sb.WriteString(formatter.RenderTable(models.Columns, cells))

	return metadata.Sign(sb.String(), &metadata.Metadata{
		Source:   source,
		Rows:     total,
		Products: products,
	})
}

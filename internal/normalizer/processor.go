// Package normalizer turns translation records into flat catalog rows.
package normalizer

import (
	"context"
	"fmt"

	"catexport/internal/catalog"
	"catexport/internal/extractor"
	"catexport/internal/logger"
	"catexport/internal/models"
)

// RowWriter receives the rows of one product at a time.
type RowWriter interface {
	Write(rows ...models.OutputRow) error
}

// Summary describes a finished run.
type Summary struct {
	Records           int
	MissingIdentifier int
	UnknownKey        int
	Products          int
	Rows              int
	Warnings          int
}

// Processor runs aggregation, extraction and flattening over a record set.
type Processor struct {
	aggregator  *catalog.Aggregator
	transformer *Transformer
	validator   *Validator
	log         *logger.Logger
}

// NewProcessor creates a processor with the default labels and record keys.
func NewProcessor(log *logger.Logger) *Processor {
	return NewProcessorWithConfig(extractor.DefaultLabelTable(), catalog.DefaultKeyResolver(), log)
}

// NewProcessorWithConfig creates a processor with custom labels and record keys.
func NewProcessorWithConfig(table extractor.LabelTable, resolver *catalog.KeyResolver, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		aggregator:  catalog.NewAggregator(resolver),
		transformer: NewTransformerWithTable(table),
		validator:   NewValidator(),
		log:         log,
	}
}

// Process folds records into products and streams each product's rows to w in
// first-seen identifier order. It stops between products once ctx is done.
func (p *Processor) Process(ctx context.Context, records []models.TranslationRecord, w RowWriter) (Summary, error) {
	// 1. Group records by identifier
	products, stats := p.aggregator.Aggregate(records)

	summary := Summary{
		Records:           stats.Records,
		MissingIdentifier: stats.MissingIdentifier,
		UnknownKey:        stats.UnknownKey,
	}

	p.log.Debug("records aggregated",
		"records", stats.Records,
		"products", products.Len(),
		"skipped", stats.Skipped(),
	)

	// 2. Transform and flatten each product
	err := products.Each(func(draft models.ProductDraft) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped before sku %s: %w", draft.Identifier, err)
		}

		product := p.transformer.Transform(draft)

		for _, warn := range p.validator.Inspect(product) {
			summary.Warnings++

			p.log.Debug("product incomplete", "sku", draft.Identifier, "reason", warn.Error())
		}

		out := product.Rows()
		if err := w.Write(out...); err != nil {
			return fmt.Errorf("failed to write rows for sku %s: %w", draft.Identifier, err)
		}

		summary.Products++
		summary.Rows += len(out)

		return nil
	})
	if err != nil {
		return summary, err
	}

	return summary, nil
}

// Rows is a RowWriter that keeps everything in memory.
type Rows []models.OutputRow

// Write appends rows.
func (r *Rows) Write(rows ...models.OutputRow) error {
	*r = append(*r, rows...)

	return nil
}

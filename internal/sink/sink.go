// Package sink writes flattened catalog rows to their destinations.
package sink

import (
	"context"
	"errors"
	"fmt"

	"catexport/internal/config"
	"catexport/internal/models"
)

// ErrUnknownFormat is returned for an output format without a writer.
var ErrUnknownFormat = errors.New("unknown output format")

// Writer receives rows in output order. Close flushes and releases the destination.
type Writer interface {
	Write(rows ...models.OutputRow) error
	Close() error
}

// Aborter is implemented by writers that can discard a failed run instead of
// publishing partial output.
type Aborter interface {
	Abort() error
}

// Abort discards w's output when it supports that, and closes it otherwise.
func Abort(w Writer) error {
	if a, ok := w.(Aborter); ok {
		return a.Abort()
	}

	return w.Close()
}

// Multi fans rows out to several writers.
type Multi []Writer

// Write passes rows to every writer and stops at the first error.
func (m Multi) Write(rows ...models.OutputRow) error {
	for _, w := range m {
		if err := w.Write(rows...); err != nil {
			return err
		}
	}

	return nil
}

// Close closes every writer and joins their errors.
func (m Multi) Close() error {
	var errs []error

	for _, w := range m {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Abort aborts every writer and joins their errors.
func (m Multi) Abort() error {
	var errs []error

	for _, w := range m {
		if err := Abort(w); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Open builds the writers configured in cfg: the primary table plus an optional
// markdown preview.
func Open(ctx context.Context, cfg *config.Config) (Writer, error) {
	out := cfg.Exporter.Output

	var primary Writer

	switch out.Format {
	case config.FormatCSV:
		w, err := CreateCSV(out.Path, CSVOptions{CRLF: out.CRLF, BOM: out.BOM})
		if err != nil {
			return nil, err
		}

		primary = w
	case config.FormatSQLite:
		w, err := OpenSQLite(ctx, out.Path, out.Table)
		if err != nil {
			return nil, err
		}

		primary = w
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, out.Format)
	}

	if out.PreviewPath == "" {
		return primary, nil
	}

	preview := NewPreviewWriter(out.PreviewPath, out.PreviewRows, cfg.Exporter.Source.GetSource())

	return Multi{primary, preview}, nil
}

package sink

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"catexport/internal/models"
)

// CSVOptions controls the CSV dialect.
type CSVOptions struct {
	// CRLF terminates records with \r\n instead of \n.
	CRLF bool
	// BOM prefixes the file with a UTF-8 byte order mark.
	BOM bool
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes the header once and then one record per row.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	// tmp is renamed to path on Close when the writer created the file.
	tmp  string
	path string
}

// NewCSVWriter writes the optional BOM and the header to w.
func NewCSVWriter(w io.Writer, opts CSVOptions) (*CSVWriter, error) {
	if opts.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = opts.CRLF

	if err := cw.Write(models.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return &CSVWriter{w: cw}, nil
}

// CreateCSV writes to a temporary file next to path, including missing parent
// directories. Close moves it into place; Abort leaves path untouched.
func CreateCSV(path string, opts CSVOptions) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w, err := NewCSVWriter(f, opts)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())

		return nil, err
	}

	w.closer = f
	w.tmp = f.Name()
	w.path = path

	return w, nil
}

// Write appends rows.
func (c *CSVWriter) Write(rows ...models.OutputRow) error {
	for _, r := range rows {
		if err := c.w.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	return nil
}

// Close flushes buffered records and closes the file, if the writer owns one.
// The file is closed even when the flush fails; it is only moved into place
// when everything succeeded.
func (c *CSVWriter) Close() error {
	c.w.Flush()

	var errs []error

	if err := c.w.Error(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush csv: %w", err))
	}

	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close csv: %w", err))
		}
	}

	if c.tmp == "" {
		return errors.Join(errs...)
	}

	if len(errs) > 0 {
		_ = os.Remove(c.tmp)

		return errors.Join(errs...)
	}

	if err := os.Chmod(c.tmp, 0o644); err != nil {
		return fmt.Errorf("failed to set csv permissions: %w", err)
	}

	if err := os.Rename(c.tmp, c.path); err != nil {
		_ = os.Remove(c.tmp)

		return fmt.Errorf("failed to move csv into place: %w", err)
	}

	return nil
}

// Abort closes the file without flushing and discards it.
func (c *CSVWriter) Abort() error {
	if c.closer == nil {
		return nil
	}

	if err := c.closer.Close(); err != nil {
		return fmt.Errorf("failed to close csv: %w", err)
	}

	if c.tmp == "" {
		return nil
	}

	if err := os.Remove(c.tmp); err != nil {
		return fmt.Errorf("failed to remove partial csv: %w", err)
	}

	return nil
}

// ReadCSV reads rows written by CSVWriter. A leading BOM and the header row are skipped.
func ReadCSV(r io.Reader) ([]models.OutputRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(records) < 2 {
		return nil, nil
	}

	rows := make([]models.OutputRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, models.RowFromValues(rec))
	}

	return rows, nil
}

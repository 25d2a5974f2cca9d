package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catexport/internal/models"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

// SQLiteWriter stores rows in a single table, recreated on open. The position
// column keeps the output order. The table is replaced in one transaction:
// readers see the previous table until Close commits, and Abort keeps it.
type SQLiteWriter struct {
	ctx      context.Context
	db       *sql.DB
	tx       *sql.Tx
	stmt     *sql.Stmt
	position int
}

// OpenSQLite opens (or creates) the database at path and recreates table.
func OpenSQLite(ctx context.Context, path, table string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	w, err := prepare(ctx, db, table)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return w, nil
}

func prepare(ctx context.Context, db *sql.DB, table string) (*SQLiteWriter, error) {
	defs := []string{`"position" INTEGER PRIMARY KEY`}
	cols := []string{`"position"`}

	for _, c := range models.Columns {
		defs = append(defs, fmt.Sprintf("%q TEXT NOT NULL", c))
		cols = append(cols, fmt.Sprintf("%q", c))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, q := range []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table),
		fmt.Sprintf(`CREATE TABLE %q (%s)`, table, strings.Join(defs, ", ")),
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()

			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, table, strings.Join(cols, ", "), ph))
	if err != nil {
		_ = tx.Rollback()

		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}

	return &SQLiteWriter{ctx: ctx, db: db, tx: tx, stmt: stmt}, nil
}

// Write inserts rows.
func (s *SQLiteWriter) Write(rows ...models.OutputRow) error {
	for _, r := range rows {
		values := r.Values()

		args := make([]any, 0, len(values)+1)
		args = append(args, s.position)

		for _, v := range values {
			args = append(args, v)
		}

		if _, err := s.stmt.ExecContext(s.ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", s.position, err)
		}

		s.position++
	}

	return nil
}

// Close commits the inserted rows and closes the database.
func (s *SQLiteWriter) Close() error {
	defer s.db.Close()

	if err := s.stmt.Close(); err != nil {
		_ = s.tx.Rollback()

		return fmt.Errorf("failed to close statement: %w", err)
	}

	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}

	return nil
}

// Abort discards the inserted rows, leaving any previous table in place.
func (s *SQLiteWriter) Abort() error {
	defer s.db.Close()

	_ = s.stmt.Close()

	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back rows: %w", err)
	}

	return nil
}

// ReadSQLite returns the rows of table in output order.
func ReadSQLite(ctx context.Context, path, table string) ([]models.OutputRow, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	defer db.Close()

	cols := make([]string, len(models.Columns))
	for i, c := range models.Columns {
		cols[i] = fmt.Sprintf("%q", c)
	}

	q := fmt.Sprintf(`SELECT %s FROM %q ORDER BY "position"`, strings.Join(cols, ", "), table)

	rs, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rs.Close()

	var out []models.OutputRow

	for rs.Next() {
		values := make([]string, len(models.Columns))

		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rs.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		out = append(out, models.RowFromValues(values))
	}

	return out, rs.Err()
}

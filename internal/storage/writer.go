package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// maxVariables stays under the bound-parameter limit of every SQLite build.
const maxVariables = 999

// Writer loads untyped tables into the database. Every column is TEXT.
type Writer struct {
	db        *sql.DB
	batchSize int
}

func NewWriter(dbPath string, batchSize int) (*Writer, error) {
	db, err := sql.Open("sqlite3", fileURI(dbPath, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if batchSize <= 0 {
		batchSize = 500
	}

	return &Writer{db: db, batchSize: batchSize}, nil
}

func (w *Writer) Close() error {
	return w.db.Close()
}

func (w *Writer) CreateTable(ctx context.Context, table string, header []string) error {
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = QuoteIdent(col) + " TEXT"
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", QuoteIdent(table), strings.Join(columns, ", "))
	if _, err := w.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

// InsertRows appends rows to table inside one transaction, so a failure
// leaves the table as it was. Rows are sent batchSize at a time as multi-row
// INSERT statements. Each row must have exactly width values.
func (w *Writer) InsertRows(ctx context.Context, table string, width int, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if width <= 0 {
		return 0, fmt.Errorf("invalid column count %d for %s", width, table)
	}

	perStatement := min(w.batchSize, max(maxVariables/width, 1))

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += perStatement {
		end := min(start+perStatement, len(rows))
		if err := insertBatch(ctx, tx, table, width, start, rows[start:end]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(rows), nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, table string, width, offset int, rows [][]string) error {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
	tuples := strings.TrimSuffix(strings.Repeat(tuple+", ", len(rows)), ", ")
	query := fmt.Sprintf("INSERT INTO %s VALUES %s", QuoteIdent(table), tuples)

	args := make([]any, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("row %d of %s has %d values, want %d", offset+i, table, len(row), width)
		}
		for _, v := range row {
			args = append(args, v)
		}
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert rows %d-%d into %s: %w", offset, offset+len(rows)-1, table, err)
	}
	return nil
}

func (w *Writer) RowCount(ctx context.Context, table string) (int, error) {
	var count int
	err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+QuoteIdent(table)).Scan(&count)
	return count, err
}

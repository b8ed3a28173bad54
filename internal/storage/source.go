package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cast"
)

var ErrSourceUnavailable = errors.New("row source unavailable")

type NameCount struct {
	Name  string
	Count int
}

// Source describes where the imported tables live. Each Open hands out a
// fresh read-only connection that the caller must Close.
type Source struct {
	path string
}

func NewSource(dbPath string) *Source {
	return &Source{path: dbPath}
}

func (s *Source) Open(ctx context.Context) (*Reader, error) {
	db, err := sql.Open("sqlite3", fileURI(s.path, "mode=ro"))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrSourceUnavailable, s.path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", ErrSourceUnavailable, s.path, err)
	}

	return &Reader{db: db}, nil
}

type Reader struct {
	db *sql.DB
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// TextColumn returns every non-null, non-empty value of column in row order.
func (r *Reader) TextColumn(ctx context.Context, table, column string) ([]string, error) {
	col := QuoteIdent(column)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s IS NOT NULL AND %s != ''",
		col, QuoteIdent(table), col, col,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s: %w", table, column, err)
		}
		values = append(values, cast.ToString(raw))
	}

	return values, rows.Err()
}

// Rows returns every row of table as positional strings. NULL cells become "".
func (r *Reader) Rows(ctx context.Context, table string) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+QuoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var result [][]string
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}

		record := make([]string, len(columns))
		for i, v := range raw {
			record[i] = cast.ToString(v)
		}
		result = append(result, record)
	}

	return result, rows.Err()
}

// GroupCounts counts rows per distinct non-empty value of column. Groups come
// back in the order their first row appears.
func (r *Reader) GroupCounts(ctx context.Context, table, column string) ([]NameCount, error) {
	col := QuoteIdent(column)
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY MIN(rowid)",
		col, QuoteIdent(table), col, col, col,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var groups []NameCount
	for rows.Next() {
		var raw any
		var count int
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("failed to scan group of %s.%s: %w", table, column, err)
		}
		groups = append(groups, NameCount{Name: cast.ToString(raw), Count: count})
	}

	return groups, rows.Err()
}

var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// fileURI builds a SQLite URI filename for path. '?', '#' and '%' in the path
// are escaped so they are not read as URI syntax.
func fileURI(path, query string) string {
	uri := "file:" + uriPathEscaper.Replace(path)
	if query != "" {
		uri += "?" + query
	}
	return uri
}

// QuoteIdent quotes a table or column name for interpolation into SQL.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deidaraiorek/csvcharts/internal/storage"
)

var ErrEmptyFile = errors.New("csv file is empty")

type Table struct {
	Name   string
	Source string
	Header []string
	Rows   [][]string
}

type Summary struct {
	Tables  int
	Rows    int
	Skipped []string
}

type Importer struct {
	writer  *storage.Writer
	logger  *zap.Logger
	workers int
}

func New(writer *storage.Writer, logger *zap.Logger, workers int) *Importer {
	if workers <= 0 {
		workers = 4
	}
	return &Importer{
		writer:  writer,
		logger:  logger,
		workers: workers,
	}
}

// ImportDir loads every *.csv file in dir into a table named after the file.
// Files are parsed in parallel and written one table at a time.
func (im *Importer) ImportDir(ctx context.Context, dir string) (Summary, error) {
	var summary Summary

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return summary, fmt.Errorf("csv directory does not exist: %s", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return summary, fmt.Errorf("failed to list csv files: %w", err)
	}
	sort.Strings(files)

	tables := make([]*Table, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := ReadFile(path)
			switch {
			case errors.Is(err, ErrEmptyFile):
				im.logger.Warn("skipping csv file", zap.String("file", filepath.Base(path)), zap.Error(err))
				return nil
			case err != nil:
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	for i, table := range tables {
		if table == nil {
			summary.Skipped = append(summary.Skipped, filepath.Base(files[i]))
			continue
		}

		im.logger.Info("importing csv file",
			zap.String("file", filepath.Base(table.Source)),
			zap.String("table", table.Name),
		)
		if len(table.Rows) == 0 {
			im.logger.Warn("csv file has no data rows, creating empty table",
				zap.String("file", filepath.Base(table.Source)),
			)
		}

		if err := im.writer.CreateTable(ctx, table.Name, table.Header); err != nil {
			return summary, err
		}
		n, err := im.writer.InsertRows(ctx, table.Name, len(table.Header), table.Rows)
		if err != nil {
			return summary, err
		}

		im.logger.Info("import complete", zap.String("table", table.Name), zap.Int("rows", n))
		summary.Tables++
		summary.Rows += n
	}

	return summary, nil
}

// ReadFile parses one CSV file. The first record is the header; every other
// record is padded or truncated to the header width. A header-only file
// yields a table with no rows.
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		rows = append(rows, fitWidth(record, len(header)))
	}

	return &Table{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source: path,
		Header: header,
		Rows:   rows,
	}, nil
}

func fitWidth(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	fitted := make([]string, width)
	copy(fitted, record)
	return fitted
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/csvimport"
	"github.com/deidaraiorek/csvcharts/internal/storage"
)

func newImportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Load every CSV file in a directory into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Import.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			return a.importDir(cmd.Context(), dir)
		},
	}

	flags := cmd.Flags()
	flags.Int("batch-size", 0, "rows per insert transaction")
	flags.Int("workers", 0, "files parsed concurrently")
	a.bind("import.batch_size", flags.Lookup("batch-size"))
	a.bind("import.workers", flags.Lookup("workers"))
	return cmd
}

func (a *app) importDir(ctx context.Context, dir string) error {
	cfg := a.cfg
	logger := a.logger.Named("import")

	if parent := filepath.Dir(cfg.Database.Path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	writer, err := storage.NewWriter(cfg.Database.Path, cfg.Import.BatchSize)
	if err != nil {
		return err
	}
	defer writer.Close()

	logger.Info("importing csv files",
		zap.String("dir", dir),
		zap.String("database", cfg.Database.Path),
		zap.Int("batch_size", cfg.Import.BatchSize),
	)

	summary, err := csvimport.New(writer, logger, cfg.Import.Workers).ImportDir(ctx, dir)
	if err != nil {
		return err
	}

	logger.Info("import completed",
		zap.Int("tables", summary.Tables),
		zap.Int("rows", summary.Rows),
		zap.String("skipped", strings.Join(summary.Skipped, ", ")),
	)
	return nil
}

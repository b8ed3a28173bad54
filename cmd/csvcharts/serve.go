package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/api"
	"github.com/deidaraiorek/csvcharts/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address")
	flags.String("static-dir", "", "directory served under /static")
	flags.Bool("strict-errors", false, "answer failed requests with HTTP 500")
	a.bind("server.addr", flags.Lookup("addr"))
	a.bind("server.static_dir", flags.Lookup("static-dir"))
	a.bind("api.strict_errors", flags.Lookup("strict-errors"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	observer, err := metrics.NewObserver("csvcharts", prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	svc, err := newAnalyticsService(cfg, a.logger, observer)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(svc, api.Config{
			StaticDir:    cfg.Server.StaticDir,
			StrictErrors: cfg.API.StrictErrors,
		}, api.Deps{Logger: a.logger, Observer: observer}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("database", cfg.Database.Path),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

package api

import (
	"context"
	_ "embed"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/analytics"
	"github.com/deidaraiorek/csvcharts/internal/metrics"
)

//go:embed landing.html
var landingPage []byte

// Service is the aggregation backend behind the chart endpoints.
type Service interface {
	Locations(ctx context.Context) (*analytics.LocationResult, error)
	WordCloud(ctx context.Context) (*analytics.WordCloudResult, error)
	Timeline(ctx context.Context) (*analytics.TimelineResult, error)
	Themes(ctx context.Context) (*analytics.ThemeResult, error)
}

type Config struct {
	StaticDir    string
	StrictErrors bool
}

type Deps struct {
	Logger   *zap.Logger
	Observer *metrics.Observer
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(svc Service, cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	h := &Handler{
		svc:      svc,
		logger:   logger.Named("api"),
		observer: deps.Observer,
		strict:   cfg.StrictErrors,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(h.logger, deps.Observer))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", h.Landing)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/publish-location-data", h.Locations)
		r.Get("/recommend-reason-wordcloud", h.WordCloud)
		r.Get("/video-publish-times", h.Timeline)
		r.Get("/theme-name-data", h.Themes)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if dir := cfg.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
			r.Get("/wordcloud", func(w http.ResponseWriter, r *http.Request) {
				http.ServeFile(w, r, filepath.Join(dir, "wordcloud.html"))
			})
		} else {
			h.logger.Info("static directory not mounted", zap.String("dir", dir))
		}
	}

	return r
}

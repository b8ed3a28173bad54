package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/analytics"
	"github.com/deidaraiorek/csvcharts/internal/metrics"
)

type Handler struct {
	svc      Service
	logger   *zap.Logger
	observer *metrics.Observer
	strict   bool
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    []any  `json:"data"`
}

type locationResponse struct {
	Success bool `json:"success"`
	*analytics.LocationResult
}

type wordCloudResponse struct {
	Success bool `json:"success"`
	*analytics.WordCloudResult
}

type timelineResponse struct {
	Success bool `json:"success"`
	*analytics.TimelineResult
}

type themeResponse struct {
	Success bool `json:"success"`
	*analytics.ThemeResult
}

func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(landingPage)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "healthy",
		"message": "API运行正常",
	})
}

func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Locations(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, locationResponse{Success: true, LocationResult: result})
}

func (h *Handler) WordCloud(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.WordCloud(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, wordCloudResponse{Success: true, WordCloudResult: result})
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Timeline(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, timelineResponse{Success: true, TimelineResult: result})
}

func (h *Handler) Themes(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Themes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, themeResponse{Success: true, ThemeResult: result})
}

// fail answers with the degraded body. Clients of the chart API expect HTTP
// 200 here unless strict errors are enabled.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	route := routePattern(r)
	h.logger.Error("request failed", zap.String("route", route), zap.Error(err))
	h.observer.RecordDegraded(route)

	status := http.StatusOK
	if h.strict {
		status = http.StatusInternalServerError
	}
	render.Status(r, status)
	render.JSON(w, r, failureResponse{
		Success: false,
		Error:   err.Error(),
		Data:    []any{},
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

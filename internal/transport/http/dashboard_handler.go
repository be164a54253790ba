package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"esgpulse/internal/analytics"
	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/services"
)

// DashboardHandler serves the derived dashboard views.
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/years", h.GetYearSeries)
	r.Get("/efficiency", h.GetEfficiency)
	r.Get("/metrics", h.GetMetricSeries)
	r.Get("/benchmark", h.GetBenchmark)
	r.Get("/bounds", h.GetBounds)
	r.Get("/regions", h.GetRegions)

	return r
}

// GetDashboard handles GET /api/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilterValues(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view := h.service.Dashboard(r.Context(), filter)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetKPIs handles GET /api/dashboard/kpis.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilterValues(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.KPIs(r.Context(), filter),
	})
}

// GetYearSeries handles GET /api/dashboard/years.
func (h *DashboardHandler) GetYearSeries(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilterValues(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	series := h.service.YearSeries(r.Context(), filter)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
		"count":  len(series),
	})
}

// GetEfficiency handles GET /api/dashboard/efficiency.
func (h *DashboardHandler) GetEfficiency(w http.ResponseWriter, r *http.Request) {
	filter, limit, err := parseFilterValues(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ranking := h.service.Efficiency(r.Context(), filter, limit)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   ranking,
		"count":  len(ranking),
	})
}

// GetMetricSeries handles GET /api/dashboard/metrics. An optional metric
// query parameter narrows the response to one named series; an unknown
// name yields an empty series, not an error.
func (h *DashboardHandler) GetMetricSeries(w http.ResponseWriter, r *http.Request) {
	series := h.service.MetricSeries(r.Context())

	if name := r.URL.Query().Get("metric"); name != "" {
		points := series[name]
		if points == nil {
			points = []analytics.MetricPoint{}
		}
		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"data":   points,
			"count":  len(points),
		})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
		"count":  len(series),
	})
}

// GetBenchmark handles GET /api/dashboard/benchmark.
func (h *DashboardHandler) GetBenchmark(w http.ResponseWriter, r *http.Request) {
	rows := h.service.Benchmark(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetBounds handles GET /api/dashboard/bounds.
func (h *DashboardHandler) GetBounds(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Bounds(r.Context()),
	})
}

// GetRegions handles GET /api/dashboard/regions.
func (h *DashboardHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	regions := h.service.Regions(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   regions,
		"count":  len(regions),
	})
}

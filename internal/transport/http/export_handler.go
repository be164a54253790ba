package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/exporter"
	"esgpulse/internal/infrastructure"
	"esgpulse/internal/services"
)

// ExportHandler streams derived views as CSV or xlsx downloads.
type ExportHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	metrics      *infrastructure.DashboardMetrics
}

// NewExportHandler creates an export handler.
func NewExportHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, metrics *infrastructure.DashboardMetrics) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
		metrics:      metrics,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{view}", h.ExportView)
	return r
}

// ExportView handles GET /api/export/{view}?format=csv|xlsx. The filter
// query parameters apply the same way they do on the dashboard routes.
func (h *ExportHandler) ExportView(w http.ResponseWriter, r *http.Request) {
	view, err := exporter.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError(fmt.Sprintf("export view %q", chi.URLParam(r, "view"))))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
		return
	}

	filter, limit, err := parseFilterValues(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table := h.buildTable(r, view, filter, limit)

	filename := fmt.Sprintf("%s_%s.%s", view, time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteWorkbook(w, table)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exporter.WriteCSV(w, table)
	}
	if err != nil {
		// Headers are already gone; all we can do is log.
		h.logger.ErrorContext(r.Context(), "export stream failed",
			slog.String("view", string(view)),
			slog.String("error", err.Error()))
		return
	}

	h.metrics.RecordExport(r.Context(), string(view), format)
	h.logger.InfoContext(r.Context(), "view exported",
		slog.String("view", string(view)),
		slog.String("format", format),
		slog.Int("rows", len(table.Records)))
}

func (h *ExportHandler) buildTable(r *http.Request, view exporter.View, filter services.Filter, limit int) exporter.Table {
	ctx := r.Context()
	switch view {
	case exporter.ViewKPIs:
		return exporter.KPITable(h.service.KPIs(ctx, filter))
	case exporter.ViewYears:
		return exporter.YearTable(h.service.YearSeries(ctx, filter))
	case exporter.ViewEfficiency:
		return exporter.EfficiencyTable(h.service.Efficiency(ctx, filter, limit))
	case exporter.ViewMetrics:
		return exporter.MetricTable(h.service.MetricSeries(ctx))
	default:
		return exporter.BenchmarkTable(h.service.Benchmark(ctx))
	}
}

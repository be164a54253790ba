package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"esgpulse/internal/services"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)

	return r
}

// Liveness handles GET /healthz. Always 200 while the process runs.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Liveness(r.Context()))
}

// Readiness handles GET /readyz. 503 until the observation dataset holds
// at least one row.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status, ready := h.service.Readiness(r.Context())
	if !ready {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}

package services

import (
	"context"
	"log/slog"
	"time"

	"esgpulse/internal/dataset"
)

// HealthStatus is the payload served on the health endpoints.
type HealthStatus struct {
	Status       string    `json:"status"`
	Version      string    `json:"version"`
	Uptime       string    `json:"uptime"`
	Snapshot     string    `json:"snapshot"`
	LoadedAt     time.Time `json:"loaded_at"`
	Observations int       `json:"observations"`
	Metrics      int       `json:"metrics"`
	Benchmarks   int       `json:"benchmarks"`
}

// HealthService reports process liveness and dataset readiness.
type HealthService struct {
	store     *dataset.Store
	logger    *slog.Logger
	version   string
	startedAt time.Time
}

// NewHealthService creates a health service.
func NewHealthService(store *dataset.Store, logger *slog.Logger, version string) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:     store,
		logger:    logger.With(slog.String("component", "health_service")),
		version:   version,
		startedAt: time.Now(),
	}
}

// Liveness reports that the process is up. It never fails.
func (s *HealthService) Liveness(ctx context.Context) HealthStatus {
	return s.status("healthy")
}

// Readiness reports whether the service can answer dashboard queries. The
// service is ready once the observation dataset has at least one row;
// metrics and benchmarks are optional.
func (s *HealthService) Readiness(ctx context.Context) (HealthStatus, bool) {
	snap := s.store.Snapshot()
	if len(snap.Observations) == 0 {
		return s.status("not_ready"), false
	}
	return s.status("ready"), true
}

func (s *HealthService) status(state string) HealthStatus {
	snap := s.store.Snapshot()
	return HealthStatus{
		Status:       state,
		Version:      s.version,
		Uptime:       time.Since(s.startedAt).Round(time.Second).String(),
		Snapshot:     snap.Version,
		LoadedAt:     snap.LoadedAt,
		Observations: len(snap.Observations),
		Metrics:      len(snap.Metrics),
		Benchmarks:   len(snap.Benchmarks),
	}
}

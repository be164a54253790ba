package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"esgpulse/internal/analytics"
	"esgpulse/internal/dataset"
	"esgpulse/internal/infrastructure"
)

// RefreshBroadcaster notifies connected dashboards that a dataset changed
// and derived views must be recomputed. Implemented by the websocket hub.
type RefreshBroadcaster interface {
	BroadcastRefresh(source string, components []string)
}

// Filter is the caller-facing configuration surface: an inclusive fiscal
// year range and a region selector. Zero values mean "use the dataset's
// full bounds" and "all regions".
type Filter struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Region string `json:"region"`
}

// DashboardView bundles every derived view the dashboard renders for one
// filter, computed from a single consistent snapshot.
type DashboardView struct {
	Version      string                             `json:"version"`
	Filter       Filter                             `json:"filter"`
	Bounds       analytics.YearRange                `json:"bounds"`
	Regions      []string                           `json:"regions"`
	KPIs         analytics.KPISummary               `json:"kpis"`
	YearSeries   []analytics.YearPoint              `json:"year_series"`
	Efficiency   []analytics.EfficiencyEntry        `json:"efficiency"`
	MetricSeries map[string][]analytics.MetricPoint `json:"metric_series"`
	Benchmark    []analytics.BenchmarkYearRow       `json:"benchmark"`
}

// ReplaceResult reports the outcome of a wholesale dataset replacement.
type ReplaceResult struct {
	Kind    dataset.Kind `json:"kind"`
	Version string       `json:"version"`
	Rows    int          `json:"rows"`
}

// DashboardService computes derived dashboard views over the current
// dataset snapshot and handles wholesale dataset replacement.
type DashboardService struct {
	store           *dataset.Store
	logger          *slog.Logger
	metrics         *infrastructure.DashboardMetrics
	hub             RefreshBroadcaster
	efficiencyLimit int
}

// NewDashboardService creates a dashboard service. The hub and metrics may
// be nil; refresh broadcasting and instrumentation are then disabled.
func NewDashboardService(store *dataset.Store, logger *slog.Logger, metrics *infrastructure.DashboardMetrics, hub RefreshBroadcaster, efficiencyLimit int) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if efficiencyLimit <= 0 {
		efficiencyLimit = 10
	}
	return &DashboardService{
		store:           store,
		logger:          logger.With(slog.String("component", "dashboard_service")),
		metrics:         metrics,
		hub:             hub,
		efficiencyLimit: efficiencyLimit,
	}
}

// normalize fills a filter's zero values with the snapshot's full bounds
// and the all-regions wildcard.
func (s *DashboardService) normalize(snap *dataset.Snapshot, filter Filter) Filter {
	bounds := analytics.YearBounds(snap.Observations)
	if filter.From == 0 {
		filter.From = bounds.From
	}
	if filter.To == 0 {
		filter.To = bounds.To
	}
	if filter.Region == "" {
		filter.Region = analytics.RegionAll
	}
	return filter
}

// Dashboard computes the full dashboard payload for one filter. All views
// derive from the same snapshot, so a concurrent upload can never mix
// generations within one response.
func (s *DashboardService) Dashboard(ctx context.Context, filter Filter) *DashboardView {
	snap := s.store.Snapshot()
	filter = s.normalize(snap, filter)

	filtered := analytics.FilterRows(snap.Observations, analytics.YearRange{From: filter.From, To: filter.To}, filter.Region)

	view := &DashboardView{
		Version:      snap.Version,
		Filter:       filter,
		Bounds:       analytics.YearBounds(snap.Observations),
		Regions:      analytics.Regions(snap.Observations),
		KPIs:         analytics.ComputeKPIs(filtered),
		YearSeries:   analytics.GroupByYear(filtered),
		Efficiency:   analytics.TopEfficiency(filtered, s.efficiencyLimit),
		MetricSeries: analytics.GroupMetricsByName(snap.Metrics),
		Benchmark:    analytics.PivotBenchmark(snap.Benchmarks),
	}

	s.metrics.RecordDashboardCompute(ctx)
	s.logger.DebugContext(ctx, "dashboard computed",
		slog.String("version", snap.Version),
		slog.Int("filtered_rows", len(filtered)),
		slog.Int("year_points", len(view.YearSeries)))

	return view
}

// KPIs computes the scalar summary for one filter.
func (s *DashboardService) KPIs(ctx context.Context, filter Filter) analytics.KPISummary {
	return analytics.ComputeKPIs(s.filtered(filter))
}

// YearSeries computes the per-year sums for one filter.
func (s *DashboardService) YearSeries(ctx context.Context, filter Filter) []analytics.YearPoint {
	return analytics.GroupByYear(s.filtered(filter))
}

// Efficiency computes the top-k efficiency ranking for one filter. A zero
// limit falls back to the configured default.
func (s *DashboardService) Efficiency(ctx context.Context, filter Filter, limit int) []analytics.EfficiencyEntry {
	if limit <= 0 {
		limit = s.efficiencyLimit
	}
	return analytics.TopEfficiency(s.filtered(filter), limit)
}

// MetricSeries returns the per-metric time series. The filter does not
// apply: the ESG dataset is year-indexed on its own axis.
func (s *DashboardService) MetricSeries(ctx context.Context) map[string][]analytics.MetricPoint {
	return analytics.GroupMetricsByName(s.store.Snapshot().Metrics)
}

// Benchmark returns the pivoted peer benchmark table.
func (s *DashboardService) Benchmark(ctx context.Context) []analytics.BenchmarkYearRow {
	return analytics.PivotBenchmark(s.store.Snapshot().Benchmarks)
}

// Bounds returns the usable fiscal-year interval of the current snapshot.
func (s *DashboardService) Bounds(ctx context.Context) analytics.YearRange {
	return analytics.YearBounds(s.store.Snapshot().Observations)
}

// Regions returns the distinct regions of the current snapshot.
func (s *DashboardService) Regions(ctx context.Context) []string {
	return analytics.Regions(s.store.Snapshot().Observations)
}

// Version returns the current snapshot version.
func (s *DashboardService) Version() string {
	return s.store.Version()
}

func (s *DashboardService) filtered(filter Filter) []analytics.ObservationRow {
	snap := s.store.Snapshot()
	filter = s.normalize(snap, filter)
	return analytics.FilterRows(snap.Observations, analytics.YearRange{From: filter.From, To: filter.To}, filter.Region)
}

// ReplaceDataset decodes an uploaded file and installs it as the new
// generation of the named dataset. Replacement is wholesale: the previous
// rows of that kind are discarded, never merged. Connected dashboards are
// notified through the refresh broadcaster.
func (s *DashboardService) ReplaceDataset(ctx context.Context, kindName, filename string, r io.Reader) (*ReplaceResult, error) {
	kind, err := dataset.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, kindName)
	}

	rows, err := dataset.Decode(filename, r)
	if err != nil {
		return nil, fmt.Errorf("decode %s upload: %w", kind, err)
	}

	var (
		snap *dataset.Snapshot
		n    int
	)
	switch kind {
	case dataset.KindObservations:
		obs := dataset.Observations(rows)
		if len(obs) == 0 {
			return nil, ErrEmptyUpload
		}
		snap = s.store.Replace(kind, obs, nil, nil)
		n = len(obs)
	case dataset.KindMetrics:
		metrics := dataset.Metrics(rows)
		if len(metrics) == 0 {
			return nil, ErrEmptyUpload
		}
		snap = s.store.Replace(kind, nil, metrics, nil)
		n = len(metrics)
	case dataset.KindBenchmark:
		bench := dataset.Benchmarks(rows)
		if len(bench) == 0 {
			return nil, ErrEmptyUpload
		}
		snap = s.store.Replace(kind, nil, nil, bench)
		n = len(bench)
	}

	s.metrics.RecordDatasetReplacement(ctx, string(kind), n)
	s.logger.InfoContext(ctx, "dataset replaced",
		slog.String("kind", string(kind)),
		slog.String("filename", filename),
		slog.String("version", snap.Version),
		slog.Int("rows", n))

	if s.hub != nil {
		s.hub.BroadcastRefresh("upload", []string{string(kind)})
	}

	return &ReplaceResult{Kind: kind, Version: snap.Version, Rows: n}, nil
}

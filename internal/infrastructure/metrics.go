package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName    = "esgpulse"
	ServiceVersion = "v1.0.0"
	MeterName      = "esgpulse"
)

// MetricsProviders holds the OpenTelemetry meter provider and the
// Prometheus scrape handler it exports through.
type MetricsProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeMetrics sets up the OpenTelemetry meter with a Prometheus
// exporter. Metrics are pull-based: the returned handler serves /metrics.
func InitializeMetrics(logger *slog.Logger) (*MetricsProviders, error) {
	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	logger.InfoContext(ctx, "metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return &MetricsProviders{
		MeterProvider:  mp,
		Meter:          mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion)),
		PrometheusHTTP: promhttp.Handler(),
		Logger:         logger,
	}, nil
}

// Shutdown gracefully shuts down the meter provider
func (p *MetricsProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("meter provider shutdown: %w", err)
		}
	}
	return nil
}

// DashboardMetrics holds the application-specific instruments.
type DashboardMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	DatasetReplacements metric.Int64Counter
	DatasetRowsIngested metric.Int64Counter
	DashboardComputes   metric.Int64Counter
	ExportsTotal        metric.Int64Counter
}

// NewDashboardMetrics creates the dashboard's business metrics.
func NewDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	datasetReplacements, err := meter.Int64Counter(
		"dataset_replacements_total",
		metric.WithDescription("Total number of wholesale dataset replacements"),
	)
	if err != nil {
		return nil, err
	}

	datasetRowsIngested, err := meter.Int64Counter(
		"dataset_rows_ingested_total",
		metric.WithDescription("Total number of rows accepted across dataset replacements"),
	)
	if err != nil {
		return nil, err
	}

	dashboardComputes, err := meter.Int64Counter(
		"dashboard_computes_total",
		metric.WithDescription("Total number of dashboard view computations"),
	)
	if err != nil {
		return nil, err
	}

	exportsTotal, err := meter.Int64Counter(
		"exports_total",
		metric.WithDescription("Total number of derived-view exports"),
	)
	if err != nil {
		return nil, err
	}

	return &DashboardMetrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		DatasetReplacements: datasetReplacements,
		DatasetRowsIngested: datasetRowsIngested,
		DashboardComputes:   dashboardComputes,
		ExportsTotal:        exportsTotal,
	}, nil
}

// RecordHTTPRequest records one completed HTTP request.
func (m *DashboardMetrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDatasetReplacement records one wholesale dataset replacement.
func (m *DashboardMetrics) RecordDatasetReplacement(ctx context.Context, kind string, rows int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.DatasetReplacements.Add(ctx, 1, attrs)
	m.DatasetRowsIngested.Add(ctx, int64(rows), attrs)
}

// RecordDashboardCompute records one full dashboard computation.
func (m *DashboardMetrics) RecordDashboardCompute(ctx context.Context) {
	if m == nil {
		return
	}
	m.DashboardComputes.Add(ctx, 1)
}

// RecordExport records one derived-view export.
func (m *DashboardMetrics) RecordExport(ctx context.Context, view, format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("view", view),
		attribute.String("format", format),
	))
}

package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgpulse/internal/analytics"
	"esgpulse/internal/dataset"
	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededService(t *testing.T) *services.DashboardService {
	t.Helper()
	store := dataset.NewStore()
	store.ReplaceAll(
		[]analytics.ObservationRow{
			{Title: "Aurora", FiscalYear: 2022, Region: "EU", PowerMW: 1.0, EnergyMWh: 100, CO2eTons: 30},
			{Title: "Aurora", FiscalYear: 2023, Region: "EU", PowerMW: 1.2, EnergyMWh: 120, CO2eTons: 35},
			{Title: "Borealis", FiscalYear: 2023, Region: "NA", PowerMW: 2.0, EnergyMWh: 200, CO2eTons: 40},
		},
		[]analytics.MetricObservation{
			{Metric: "Renewable Share", Year: 2022, Value: 40, Unit: "%"},
			{Metric: "Renewable Share", Year: 2023, Value: 55, Unit: "%"},
		},
		[]analytics.BenchmarkObservation{
			{Company: "PeerCo", Year: 2023, Value: 12.5},
		},
	)
	return services.NewDashboardService(store, testLogger(), nil, nil, 10)
}

func dashboardRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()
	handler := NewDashboardHandler(seededService(t), logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api/dashboard", handler.Routes())
	return r
}

func getJSON(t *testing.T, router http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGetDashboard(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]interface{})
	kpis := data["kpis"].(map[string]interface{})
	assert.InDelta(t, 420.0, kpis["total_energy_mwh"], 1e-9)
	assert.EqualValues(t, 2, kpis["title_count"])
	assert.Len(t, data["regions"], 2)
}

func TestGetKPIs_RegionFilter(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/kpis?region=EU")
	require.Equal(t, http.StatusOK, code)

	kpis := body["data"].(map[string]interface{})
	assert.InDelta(t, 220.0, kpis["total_energy_mwh"], 1e-9)
	assert.EqualValues(t, 1, kpis["title_count"])
}

func TestGetYearSeries_RangeFilter(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/years?from=2023&to=2023")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
}

func TestGetYearSeries_InvertedRangeIsEmpty(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/years?from=2023&to=2022")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
}

func TestGetEfficiency_Limit(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/efficiency?limit=1")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	// Aurora: 65 tons over 220 MWh, the most efficient group.
	assert.Equal(t, "Aurora", first["title"])
}

func TestGetMetricSeries_NamedMetric(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/metrics?metric=Renewable+Share")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["count"])

	code, body = getJSON(t, router, "/api/dashboard/metrics?metric=Unknown")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["data"])
}

func TestGetBounds(t *testing.T) {
	router := dashboardRouter(t)

	code, body := getJSON(t, router, "/api/dashboard/bounds")
	require.Equal(t, http.StatusOK, code)

	bounds := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2022, bounds["from"])
	assert.EqualValues(t, 2023, bounds["to"])
}

func TestFilterValidation(t *testing.T) {
	router := dashboardRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"non-integer from", "/api/dashboard/kpis?from=abc"},
		{"year below range", "/api/dashboard/kpis?from=1500"},
		{"year above range", "/api/dashboard/kpis?to=9999"},
		{"negative limit", "/api/dashboard/efficiency?limit=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
		})
	}
}

package http

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "esgpulse/internal/errors"
)

func exportRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()
	handler := NewExportHandler(seededService(t), logger, apierrors.NewErrorHandler(logger, false), nil)

	r := chi.NewRouter()
	r.Mount("/api/export", handler.Routes())
	return r
}

func TestExportView_CSV(t *testing.T) {
	router := exportRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/years", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	raw := rec.Body.Bytes()
	bom := []byte{0xEF, 0xBB, 0xBF}
	require.True(t, bytes.HasPrefix(raw, bom))

	records, err := csv.NewReader(bytes.NewReader(raw[len(bom):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"FiscalYear", "Energy_MWh", "CO2e_MetricTon"}, records[0])
}

func TestExportView_XLSX(t *testing.T) {
	router := exportRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/kpis?format=xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("KPIs")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"KPI", "Value"}, rows[0])
}

func TestExportView_FilterApplies(t *testing.T) {
	router := exportRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/efficiency?region=EU", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aurora")
	assert.NotContains(t, rec.Body.String(), "Borealis")
}

func TestExportView_UnknownView(t *testing.T) {
	router := exportRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/portfolio", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportView_BadFormat(t *testing.T) {
	router := exportRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/kpis?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

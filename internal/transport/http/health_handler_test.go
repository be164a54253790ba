package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgpulse/internal/dataset"
	"esgpulse/internal/services"
)

func TestHealthHandler_Readiness(t *testing.T) {
	emptyStore := dataset.NewStore()
	handler := NewHealthHandler(services.NewHealthService(emptyStore, testLogger(), "test"), testLogger())

	r := chi.NewRouter()
	r.Mount("/", handler.Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status["status"])
	assert.Equal(t, "test", status["version"])
}

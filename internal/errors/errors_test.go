package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset not loaded")

	assert.Equal(t, "Dataset not loaded", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "DATASET_NOT_FOUND", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("region", "Region is required")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "region", detail.Field)
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad input", "/api/dashboard")
	problem.WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeValidation, decoded["type"])
	assert.Equal(t, float64(http.StatusBadRequest), decoded["status"])
	assert.Equal(t, "abc-123", decoded["trace_id"])
}

func TestErrorHandlerHandleError(t *testing.T) {
	handler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error keeps status and maps type",
			err:        ErrDatasetNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
		},
		{
			name:       "validation api error",
			err:        ErrValidation("from", "must be a year"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "wrapped api error unwraps",
			err:        fmt.Errorf("handling request: %w", ErrInvalidParameter),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "unknown error becomes internal",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, "/api/dashboard", problem["instance"])
		})
	}
}

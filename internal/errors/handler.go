package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/render"

	"esgpulse/internal/infrastructure"
)

// Common error types following RFC 7807
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeRateLimit       = "/errors/rate-limit"
	TypeInternal        = "/errors/internal"
	TypeServiceDown     = "/errors/service-unavailable"
	TypeTimeout         = "/errors/timeout"
	TypePayloadTooLarge = "/errors/payload-too-large"
)

// Domain-specific error types
const (
	TypeDatasetNotFound    = "/errors/dataset/not-found"
	TypeDatasetUnknownKind = "/errors/dataset/unknown-kind"
	TypeDatasetParse       = "/errors/dataset/parse-failed"
	TypeWebSocketUpgrade   = "/errors/websocket/upgrade-failed"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("stack", string(debug.Stack()))
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	switch {
	case strings.Contains(err.Error(), "not found"):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"Resource Not Found",
			err.Error(),
			r.URL.Path,
		)

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing the request",
			r.URL.Path,
		)
	}
}

// apiErrorToProblem maps an APIError onto problem details, preserving the
// error code and any field-level details as extensions.
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := typeForCode(apiErr.ErrorCode, apiErr.StatusCode)

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

func typeForCode(code string, status int) string {
	switch code {
	case "VALIDATION_FAILED", "INVALID_PARAMETER", "MISSING_PARAMETER", "INVALID_REQUEST":
		return TypeValidation
	case "DATASET_NOT_FOUND":
		return TypeDatasetNotFound
	case "DATASET_UNKNOWN_KIND":
		return TypeDatasetUnknownKind
	case "DATASET_PARSE_FAILED":
		return TypeDatasetParse
	case "RATE_LIMIT_EXCEEDED":
		return TypeRateLimit
	case "PAYLOAD_TOO_LARGE":
		return TypePayloadTooLarge
	case "WEBSOCKET_UPGRADE_FAILED":
		return TypeWebSocketUpgrade
	}

	switch status {
	case http.StatusNotFound:
		return TypeNotFound
	case http.StatusBadRequest:
		return TypeValidation
	case http.StatusServiceUnavailable:
		return TypeServiceDown
	}
	return TypeInternal
}

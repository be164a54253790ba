package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/services"
)

// DatasetHandler handles dataset uploads.
type DatasetHandler struct {
	service        *services.DashboardService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "dataset_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/{kind}", h.UploadDataset)

	return r
}

// UploadDataset handles POST /api/datasets/{kind}. The body is a multipart
// form with the dataset in the "file" field; CSV and xlsx are accepted.
// Replacement is wholesale and atomic: a rejected upload leaves the current
// snapshot untouched.
func (h *DatasetHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "multipart field 'file' is required"))
		return
	}
	defer file.Close()

	result, err := h.service.ReplaceDataset(r.Context(), kind, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownDataset):
			h.errorHandler.HandleError(w, r, apierrors.UnknownDatasetError(kind))
		case errors.Is(err, services.ErrEmptyUpload):
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnprocessableEntity,
				"DATASET_EMPTY",
				"Uploaded dataset contains no usable rows",
				header.Filename,
			))
		default:
			h.errorHandler.HandleError(w, r, apierrors.DatasetParseError(kind, err))
		}
		return
	}

	h.logger.InfoContext(r.Context(), "dataset upload accepted",
		slog.String("kind", kind),
		slog.String("filename", header.Filename),
		slog.Int("rows", result.Rows))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

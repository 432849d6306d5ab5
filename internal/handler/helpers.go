package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"importdocs/internal/domain"
	"importdocs/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Unclassified errors are logged and reported without detail.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrConfigurationMissing):
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrConversionFailed):
		logger.Warn("conversion failed", "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "document conversion failed")
	case errors.Is(err, domain.ErrStorage):
		logger.Error("storage failure", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "storage failure")
	default:
		logger.Error("internal error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// HandleCreateConflict handles conflicts during creation by returning the existing resource with 409
// If the error is a ConflictError carrying an ID, it calls fetchFn to retrieve the existing resource
func HandleCreateConflict[T any](w http.ResponseWriter, logger *slog.Logger, err error, fetchFn func(id int64) (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		id, parseErr := strconv.ParseInt(conflictErr.ResourceID, 10, 64)
		if parseErr != nil {
			handleError(w, logger, err)
			return
		}

		// Try to fetch existing resource
		existing, fetchErr := fetchFn(id)
		if fetchErr != nil {
			handleError(w, logger, fetchErr)
			return
		}

		// Return existing resource with 409 status
		httputil.RespondData(w, http.StatusConflict, existing)
		return
	}

	// Not a conflict error, handle normally
	handleError(w, logger, err)
}

package handler

import (
	"errors"
	"net/http"

	"contentgate/internal/domain"
	"contentgate/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var throttled *domain.TooManyRequestsError

	switch {
	case errors.As(err, &throttled):
		httputil.SetRetryAfter(w, throttled.RetryAfter)
		httputil.RespondErrorWithExtras(w, http.StatusTooManyRequests, throttled.Error(), map[string]interface{}{
			"retry_after_ms": throttled.RetryAfter.Milliseconds(),
		})
	case errors.Is(err, httputil.ErrBodyTooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondError(w, http.StatusServiceUnavailable, "content store unavailable")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseRequest decodes a JSON body, mapping decode failures to validation errors
func parseRequest(w http.ResponseWriter, r *http.Request, dest interface{}, maxBytes int64) error {
	if err := httputil.ParseJSON(w, r, dest, maxBytes); err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			return err
		}
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/observability"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

const internalErrorMessage = "internal server error"

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// appErrorStatus resolves the status and client message of err. Errors that
// are not AppErrors, and internal ones, are logged and hidden.
func appErrorStatus(r *http.Request, err error) (int, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("method", r.Method).Str("path", r.URL.Path).Msg("Unhandled error")
		return http.StatusInternalServerError, internalErrorMessage
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		return status, internalErrorMessage
	}
	return status, appErr.Message
}

func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := appErrorStatus(r, err)
	respondWithError(w, status, message)
}

// decodeJSON decodes the request body into v. An empty body is accepted
// when optional is true.
func decodeJSON(r *http.Request, v interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return nil
	}
	return apperrors.NewValidationError("invalid request payload")
}

// Health answers the liveness probe of a service
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": service,
		})
	}
}

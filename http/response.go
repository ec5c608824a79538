package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError maps a gateway error to its terminal HTTP response. Expired
// tokens get their own reason code so a client can prompt for a token
// refresh instead of treating the denial as permanent.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediagate.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Object not found")
	case errors.Is(err, mediagate.ErrExpired):
		WriteError(w, http.StatusUnauthorized, "expired", "Access token expired")
	case errors.Is(err, mediagate.ErrForbidden):
		WriteError(w, http.StatusUnauthorized, "forbidden", "Access token rejected")
	case errors.Is(err, mediagate.ErrNotConfigured):
		WriteError(w, http.StatusServiceUnavailable, "worker_not_configured", "Media gateway is not configured")
	case errors.Is(err, mediagate.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request")
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
	gatehttp "github.com/cnyakundi/siddessocial-sub002/http"
)

func TestHandleError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, mediagate.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandleError_Forbidden(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, mediagate.ErrForbidden)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestHandleError_Expired(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, mediagate.ErrExpired)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestHandleError_NotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, mediagate.ErrNotConfigured)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "worker_not_configured")
}

func TestHandleError_WrappedExpired(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, fmt.Errorf("verify token: %w", mediagate.ErrExpired))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestHandleError_InternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.HandleError(rec, errors.New("some unexpected error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
	// No internal detail leaks into the body.
	assert.NotContains(t, rec.Body.String(), "unexpected")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	gatehttp.WriteError(rec, http.StatusBadRequest, "bad_request", "Empty object key")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"bad_request"`)
	assert.Contains(t, rec.Body.String(), `"message":"Empty object key"`)
}

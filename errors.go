package mediagate

import "errors"

var (
	// ErrNotFound is returned when an object does not exist in the store
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a token fails decoding, signature
	// verification, payload parsing, or key binding
	ErrForbidden = errors.New("forbidden")
	// ErrExpired is returned when a token is cryptographically valid but
	// past its expiry
	ErrExpired = errors.New("token expired")
	// ErrNotConfigured is returned when no signing secret is configured
	ErrNotConfigured = errors.New("secret not configured")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

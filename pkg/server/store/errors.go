package store

import "errors"

var (
	// ErrNotFound is returned when a single entity does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backend cannot serve the request.
	// The backend error is wrapped alongside it.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrMissingToken is returned by EditorStore operations called without
	// an access token. No backend call is made.
	ErrMissingToken = errors.New("access token required")

	// ErrForbidden is returned when the backend rejects the access token.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when the backend rejects a write payload.
	ErrInvalidInput = errors.New("invalid input")
)

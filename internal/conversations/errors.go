package conversations

import (
	"errors"
	"net/http"
)

// Domain errors for conversation operations.
var (
	ErrNotFound      = errors.New("conversation turn not found")
	ErrDuplicate     = errors.New("conversation turn already exists")
	ErrInvalidRole   = errors.New("invalid conversation role")
	ErrMissingThread = errors.New("thread_id is required")
)

// MapHTTPStatus maps conversation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRole) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

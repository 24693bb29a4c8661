package vendors

import (
	"errors"
	"net/http"
)

// Domain errors for vendor operations.
var (
	ErrNotFound        = errors.New("vendor not found")
	ErrDuplicate       = errors.New("vendor already exists")
	ErrFieldNotAllowed = errors.New("field is not permitted for update")
)

// MapHTTPStatus maps vendor domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFieldNotAllowed) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

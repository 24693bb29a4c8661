package invoices

import (
	"errors"
	"net/http"
)

// Domain errors for invoice operations.
var (
	ErrNotFound  = errors.New("invoice not found")
	ErrDuplicate = errors.New("invoice already exists")
)

// MapHTTPStatus maps invoice domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

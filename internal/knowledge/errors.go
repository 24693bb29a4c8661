package knowledge

import (
	"errors"
	"net/http"
)

// Domain errors for knowledge base operations.
var (
	ErrEmptyQuery   = errors.New("search query is empty")
	ErrEmptyContent = errors.New("chunk content is empty")
)

// MapHTTPStatus maps knowledge domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrEmptyContent) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

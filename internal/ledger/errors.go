package ledger

import (
	"errors"
	"net/http"
)

// Domain errors for ledger operations.
var (
	ErrMissingColumn = errors.New("ledger csv missing required column")
	ErrEmptyExport   = errors.New("no ledger rows to export")
)

// MapHTTPStatus maps ledger domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingColumn) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrEmptyExport) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

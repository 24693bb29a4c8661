package knowledge

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/agentia/vendormail/pkg/handlers"
	"github.com/agentia/vendormail/pkg/routes"
)

// Handler provides HTTP endpoints for knowledge base operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// SearchRequest is the body for the search endpoint.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// CountResponse reports the index size.
type CountResponse struct {
	Count int `json:"count"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "knowledge"),
	}
}

// Routes returns the route group definition for knowledge endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/knowledge",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/count", Handler: h.Count},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
		},
	}
}

// Count returns the number of indexed chunks.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.sys.Count(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResponse{Count: total})
}

// Search returns ranked excerpts for a query.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.K < 1 {
		req.K = 3
	}

	items, err := h.sys.Search(r.Context(), req.Query, req.K)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

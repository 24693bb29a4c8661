package ledger

import (
	"log/slog"
	"net/http"

	"github.com/agentia/vendormail/pkg/handlers"
	"github.com/agentia/vendormail/pkg/routes"
)

// Handler provides HTTP endpoints for ledger data exchange.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// StatusResponse acknowledges a completed ledger operation.
type StatusResponse struct {
	Status string `json:"status"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "ledger"),
	}
}

// Routes returns the route group definition for ledger endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/ledger",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/ingest", Handler: h.Ingest},
			{Method: "POST", Pattern: "/export", Handler: h.Export},
		},
	}
}

// Ingest triggers a full data load from the ingest directory.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.IngestAll(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ingested"})
}

// Export rebuilds and archives the ledger CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Export(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "exported"})
}

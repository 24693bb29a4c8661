package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agentia/vendormail/internal/pipeline"
	"github.com/agentia/vendormail/pkg/handlers"
	"github.com/agentia/vendormail/pkg/routes"
)

// inboxHandler is the inbound boundary: it accepts one email-shaped payload
// and runs it through the pipeline.
type inboxHandler struct {
	orchestrator *pipeline.Orchestrator
	logger       *slog.Logger
}

func newInboxHandler(orchestrator *pipeline.Orchestrator, logger *slog.Logger) *inboxHandler {
	return &inboxHandler{
		orchestrator: orchestrator,
		logger:       logger.With("handler", "inbox"),
	}
}

func (h *inboxHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/inbox",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.receive},
		},
	}
}

// receive runs one inbound email through the pipeline and returns the reply,
// action summary, and authorization flag. A drafting failure still yields a
// reply; the caller never sees an unhandled fault.
func (h *inboxHandler) receive(w http.ResponseWriter, r *http.Request) {
	var email pipeline.Email
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(email.Sender) == "" || strings.TrimSpace(email.ThreadID) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errMissingFields)
		return
	}

	state, err := h.orchestrator.Run(r.Context(), email)
	if err != nil {
		h.logger.Error("pipeline run failed", "thread_id", email.ThreadID, "error", err)
	}

	handlers.RespondJSON(w, http.StatusOK, state.Response())
}

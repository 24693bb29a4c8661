package pipeline

import (
	"context"
	"log/slog"

	"github.com/agentia/vendormail/internal/conversations"
)

// persistInteraction records the inbound email and the outbound reply as
// conversation turns. Store errors are logged but never block the reply
// from reaching the caller; every run persists exactly once.
func (o *Orchestrator) persistInteraction(ctx context.Context, log *slog.Logger, s State) Patch {
	if _, err := o.collab.History.Append(
		ctx, s.Input.ThreadID, conversations.RoleVendor, s.Input.Body,
	); err != nil {
		log.Error("failed to persist vendor turn", "error", err)
	}

	if s.Reply != "" {
		if _, err := o.collab.History.Append(
			ctx, s.Input.ThreadID, conversations.RoleAssistant, s.Reply,
		); err != nil {
			log.Error("failed to persist assistant turn", "error", err)
		}
	}

	log.Info("interaction persisted", "thread_id", s.Input.ThreadID)

	return Patch{
		Audit: []string{"Conversation Saved"},
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/prompts"
)

// draftReply composes the outbound email with the creative drafter, feeding
// it whichever data context the executed branch produced. Drafting is the
// one stage whose collaborator failure is fatal for the request; the
// orchestrator substitutes the system error reply before persistence.
func (o *Orchestrator) draftReply(ctx context.Context, log *slog.Logger, s State) Patch {
	vendorName := "Vendor"
	if s.Identity != nil {
		vendorName = s.Identity.Name
	}

	var dataContext string
	switch s.Intent {
	case IntentStatus, IntentUpdate:
		dataContext = s.StructuredResult
		if dataContext == "" {
			dataContext = "Action completed, but no specific details returned."
		}
	case IntentPolicy:
		dataContext = s.RetrievedContext
		if dataContext == "" {
			dataContext = "No relevant policy documents found."
		}
	default:
		dataContext = "User asked something unrelated to Invoices or Policies."
	}

	system := prompts.Drafter(vendorName, string(s.Intent), dataContext)

	reply, err := o.collab.Drafter.Complete(ctx, system, s.History)
	if err != nil {
		log.Error("drafting failed", "error", err)
		return Patch{
			Failure: fmt.Errorf("draft reply: %w", err),
			Audit:   []string{"Draft Failed"},
		}
	}

	log.Info("draft generated")

	return Patch{
		Reply: ref(reply),
		History: []completion.Message{{
			Role:    completion.RoleAssistant,
			Content: reply,
		}},
		Audit: []string{"Drafted Response"},
	}
}

// draftRejection returns the fixed security rejection. Deterministic, no
// collaborator call.
func (o *Orchestrator) draftRejection(_ context.Context, log *slog.Logger, _ State) Patch {
	log.Info("rejection drafted")

	return Patch{
		Reply: ref(rejectionReply),
		History: []completion.Message{{
			Role:    completion.RoleAssistant,
			Content: rejectionReply,
		}},
		Audit: []string{"Sent Rejection Email"},
	}
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/conversations"
)

// loadContext seeds the message history: up to HistoryLimit prior turns
// reordered oldest first, with the current email appended last. A store
// error degrades to an empty history rather than aborting the run.
func (o *Orchestrator) loadContext(ctx context.Context, log *slog.Logger, s State) Patch {
	turns, err := o.collab.History.Recent(ctx, s.Input.ThreadID, o.cfg.HistoryLimit)
	if err != nil {
		log.Warn("history load failed, continuing with empty context", "error", err)
		turns = nil
	}

	history := make([]completion.Message, 0, len(turns)+1)

	// The store returns newest first; prompts want oldest first.
	for i := len(turns) - 1; i >= 0; i-- {
		history = append(history, completion.Message{
			Role:    promptRole(turns[i].Role),
			Content: turns[i].Content,
		})
	}

	history = append(history, completion.Message{
		Role:    completion.RoleUser,
		Content: s.Input.Body,
	})

	log.Info("context loaded", "prior_turns", len(turns))

	return Patch{
		History: history,
		Audit:   []string{"Context Loaded"},
	}
}

func promptRole(stored string) string {
	if stored == conversations.RoleAssistant {
		return completion.RoleAssistant
	}
	return completion.RoleUser
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Run drives one inbound email through the stage loop and returns the final
// state. The returned error mirrors State.Failure: when drafting fails the
// state still carries the system error reply, so callers can surface a
// response either way. Persistence executes exactly once on every path.
func (o *Orchestrator) Run(ctx context.Context, input Email) (*State, error) {
	requestID := input.ID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	log := o.logger.With("request_id", requestID, "thread_id", input.ThreadID)
	log.Info("run started", "sender", input.Sender, "subject", input.Subject)

	state := NewState(input)
	current := Start

	for {
		stageLog := log.With("stage", current.String())
		state.Apply(o.execute(ctx, current, stageLog, *state))

		if current == StagePersistInteraction {
			break
		}

		next := Next(current, *state)

		// The caller always receives a reply, even when a stage failed
		// before one was drafted.
		if next == StagePersistInteraction && state.Failure != nil && state.Reply == "" {
			state.Apply(Patch{Reply: ref(systemErrorReply)})
		}

		current = next
	}

	log.Info("run complete",
		"authorized", state.Authorized,
		"intent", string(state.Intent),
		"failed", state.Failure != nil,
	)

	return state, state.Failure
}

// execute dispatches one stage. Stages receive the state by value and
// report their effects only through the returned patch.
func (o *Orchestrator) execute(ctx context.Context, id StageID, log *slog.Logger, s State) Patch {
	switch id {
	case StageVerifyIdentity:
		return o.verifyIdentity(ctx, log, s)
	case StageLoadContext:
		return o.loadContext(ctx, log, s)
	case StageClassifyIntent:
		return o.classifyIntent(ctx, log, s)
	case StageExecuteStatusLookup:
		return o.executeStatusLookup(ctx, log, s)
	case StageExecuteUpdate:
		return o.executeUpdate(ctx, log, s)
	case StageExecuteKnowledgeRetrieval:
		return o.executeKnowledgeRetrieval(ctx, log, s)
	case StageDraftReply:
		return o.draftReply(ctx, log, s)
	case StageDraftRejection:
		return o.draftRejection(ctx, log, s)
	case StagePersistInteraction:
		return o.persistInteraction(ctx, log, s)
	default:
		return Patch{}
	}
}

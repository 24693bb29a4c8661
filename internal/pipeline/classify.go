package pipeline

import (
	"context"
	"log/slog"

	"github.com/agentia/vendormail/internal/prompts"
)

// classifyIntent asks the deterministic classifier for the message intent.
// Model failure and out-of-set output both coerce to UNRELATED so the run
// always carries a member of the closed intent set.
func (o *Orchestrator) classifyIntent(ctx context.Context, log *slog.Logger, s State) Patch {
	raw, err := o.collab.Classifier.Complete(ctx, prompts.Classifier(), s.History)
	if err != nil {
		log.Warn("classification failed, defaulting to UNRELATED", "error", err)
		raw = string(IntentUnrelated)
	}

	intent, ok := ParseIntent(raw)
	if !ok {
		log.Warn("classifier returned out-of-set intent, coerced to UNRELATED", "raw", raw)
	}

	log.Info("intent classified", "intent", string(intent))

	return Patch{
		Intent: ref(intent),
		Audit:  []string{"Classified as " + string(intent)},
	}
}

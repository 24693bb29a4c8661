package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// executeKnowledgeRetrieval queries the policy knowledge base with the email
// body and formats the ranked excerpts for the drafter. An empty index, an
// empty result set, and a query error each degrade to a distinct string.
func (o *Orchestrator) executeKnowledgeRetrieval(ctx context.Context, log *slog.Logger, s State) Patch {
	audit := []string{"Retrieved Policy Context"}

	total, err := o.collab.Knowledge.Count(ctx)
	if err != nil {
		log.Warn("knowledge count failed", "error", err)
		return Patch{
			RetrievedContext: ref("Error retrieving policy information."),
			Audit:            audit,
		}
	}

	if total == 0 {
		log.Warn("knowledge index is empty")
		return Patch{
			RetrievedContext: ref("Policy index is currently empty. Cannot retrieve information."),
			Audit:            audit,
		}
	}

	excerpts, err := o.collab.Knowledge.Search(ctx, s.Input.Body, o.cfg.RetrievalK)
	if err != nil {
		log.Warn("knowledge search failed", "error", err)
		return Patch{
			RetrievedContext: ref("Error retrieving policy information."),
			Audit:            audit,
		}
	}

	if len(excerpts) == 0 {
		log.Info("knowledge search yielded no results")
		return Patch{
			RetrievedContext: ref("No relevant policy documents found."),
			Audit:            audit,
		}
	}

	chunks := make([]string, 0, len(excerpts))
	for i, e := range excerpts {
		content := strings.TrimSpace(strings.ReplaceAll(e.Content, "\n", " "))
		chunks = append(chunks, fmt.Sprintf("[Excerpt %d from %s (Page %d)]:\n%s",
			i+1, e.SourceLabel, e.PageNumber, content))
	}

	log.Info("knowledge retrieved", "excerpts", len(excerpts))

	return Patch{
		RetrievedContext: ref(strings.Join(chunks, "\n\n")),
		Audit:            audit,
	}
}

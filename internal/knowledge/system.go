package knowledge

import "context"

// System defines the public contract for knowledge base operations.
type System interface {
	Handler() *Handler

	// Search returns up to k excerpts ranked by relevance to the query.
	// An empty result with a non-empty index means nothing matched.
	Search(ctx context.Context, query string, k int) ([]Excerpt, error)

	// Count reports how many chunks the index holds. Callers use it to
	// distinguish an empty index from a query with no matches.
	Count(ctx context.Context) (int, error)

	// AddBatch stores a set of chunks in one transaction, so a partially
	// ingested document never persists. Commands with empty content are
	// skipped. Returns the number of chunks stored.
	AddBatch(ctx context.Context, cmds []AddCommand) (int, error)
}

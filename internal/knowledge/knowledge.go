// Package knowledge implements the policy knowledge base: chunked document
// storage with full-text retrieval ranked by relevance.
package knowledge

// Excerpt is a retrieval result: a chunk plus its relevance rank.
type Excerpt struct {
	Content     string  `json:"content"`
	SourceLabel string  `json:"source_label"`
	PageNumber  int     `json:"page_number"`
	Rank        float64 `json:"rank"`
}

// AddCommand carries the data needed to store a chunk during ingestion.
type AddCommand struct {
	SourceLabel string
	PageNumber  int
	Content     string
}

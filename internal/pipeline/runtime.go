package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/conversations"
	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/knowledge"
	"github.com/agentia/vendormail/internal/vendors"
)

// IdentityStore resolves senders against the vendor master and applies
// contact updates.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*vendors.Vendor, error)
	UpdateContact(ctx context.Context, id uuid.UUID, field, value string) error
}

// HistoryStore records and recalls conversation turns. Recent returns turns
// newest first; the pipeline reorders them oldest first before use.
type HistoryStore interface {
	Append(ctx context.Context, threadID, role, content string) (*conversations.Turn, error)
	Recent(ctx context.Context, threadID string, limit int) ([]conversations.Turn, error)
}

// InvoiceLedger serves point lookups and pending balances.
type InvoiceLedger interface {
	FindByNumber(ctx context.Context, number string, vendorID uuid.UUID) (*invoices.Invoice, error)
	Pending(ctx context.Context, vendorID uuid.UUID) ([]invoices.Invoice, error)
}

// Retriever queries the policy knowledge base. Count lets the pipeline
// distinguish an empty index from a query with no matches.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]knowledge.Excerpt, error)
	Count(ctx context.Context) (int, error)
}

// LedgerExporter rebuilds the ledger CSV after a successful contact update.
type LedgerExporter interface {
	Export(ctx context.Context) error
}

// Collaborators bundles the external systems a run depends on. All of them
// are injected; the pipeline holds no globals.
type Collaborators struct {
	Vendors    IdentityStore
	History    HistoryStore
	Invoices   InvoiceLedger
	Knowledge  Retriever
	Classifier completion.System
	Extractor  completion.System
	Drafter    completion.System
	Ledger     LedgerExporter
}

// Config carries pipeline tuning values.
type Config struct {
	// HistoryLimit caps the prior turns loaded into context.
	HistoryLimit int
	// RetrievalK caps the excerpts fetched per policy query.
	RetrievalK int
}

const (
	defaultHistoryLimit = 5
	defaultRetrievalK   = 3
)

// Orchestrator drives the stage loop for inbound emails. It is safe for
// concurrent use; each run owns its own state.
type Orchestrator struct {
	collab Collaborators
	cfg    Config
	logger *slog.Logger
}

// New creates an Orchestrator over the given collaborators.
func New(collab Collaborators, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.RetrievalK < 1 {
		cfg.RetrievalK = defaultRetrievalK
	}

	return &Orchestrator{
		collab: collab,
		cfg:    cfg,
		logger: logger.With("system", "pipeline"),
	}
}

func ref[T any](v T) *T {
	return &v
}

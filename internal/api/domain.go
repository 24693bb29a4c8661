package api

import (
	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/conversations"
	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/knowledge"
	"github.com/agentia/vendormail/internal/ledger"
	"github.com/agentia/vendormail/internal/pipeline"
	"github.com/agentia/vendormail/internal/vendors"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Vendors       vendors.System
	Invoices      invoices.System
	Conversations conversations.System
	Knowledge     knowledge.System
	Ledger        *ledger.Service
	Orchestrator  *pipeline.Orchestrator
}

// NewDomain creates all domain systems from the API runtime and wires the
// pipeline orchestrator over them.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	vendorSystem := vendors.New(db, runtime.Logger, runtime.Pagination)
	invoiceSystem := invoices.New(db, runtime.Logger, runtime.Pagination)
	conversationSystem := conversations.New(db, runtime.Logger, runtime.Pagination)
	knowledgeSystem := knowledge.New(db, runtime.Logger)

	ledgerSystem := ledger.New(
		db,
		vendorSystem,
		invoiceSystem,
		knowledgeSystem,
		runtime.Storage,
		runtime.Logger,
		runtime.Ingest.DataDir,
	)

	orchestrator := pipeline.New(
		pipeline.Collaborators{
			Vendors:    vendorSystem,
			History:    conversationSystem,
			Invoices:   invoiceSystem,
			Knowledge:  knowledgeSystem,
			Classifier: completion.New(runtime.Agents.Classifier, runtime.Logger),
			Extractor:  completion.New(runtime.Agents.Extractor, runtime.Logger),
			Drafter:    completion.New(runtime.Agents.Drafter, runtime.Logger),
			Ledger:     ledgerSystem,
		},
		pipeline.Config{
			HistoryLimit: runtime.Pipeline.HistoryLimit,
			RetrievalK:   runtime.Pipeline.RetrievalK,
		},
		runtime.Logger,
	)

	return &Domain{
		Vendors:       vendorSystem,
		Invoices:      invoiceSystem,
		Conversations: conversationSystem,
		Knowledge:     knowledgeSystem,
		Ledger:        ledgerSystem,
		Orchestrator:  orchestrator,
	}
}

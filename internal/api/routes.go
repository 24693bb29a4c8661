package api

import (
	"net/http"

	"github.com/agentia/vendormail/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		newInboxHandler(domain.Orchestrator, runtime.Logger).routes(),
		domain.Vendors.Handler().Routes(),
		domain.Invoices.Handler().Routes(),
		domain.Conversations.Handler().Routes(),
		domain.Knowledge.Handler().Routes(),
		domain.Ledger.Handler().Routes(),
	)
}

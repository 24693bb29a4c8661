// Package api assembles the API module: domain systems, the pipeline
// orchestrator, and route registration behind the configured base path.
package api

import (
	"errors"
	"net/http"

	"github.com/agentia/vendormail/internal/config"
	"github.com/agentia/vendormail/internal/infrastructure"
	"github.com/agentia/vendormail/pkg/middleware"
	"github.com/agentia/vendormail/pkg/module"
)

var errMissingFields = errors.New("sender and thread_id are required")

// NewModule creates the API module with all domain handlers and middleware.
// The returned Domain exposes the assembled systems for startup hooks and
// the simulation CLI.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, domain, nil
}

package api

import (
	"github.com/agentia/vendormail/internal/config"
	"github.com/agentia/vendormail/internal/infrastructure"
	"github.com/agentia/vendormail/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agents     config.AgentsConfig
	Pipeline   config.PipelineConfig
	Ingest     config.IngestConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agents:     cfg.Agents,
		Pipeline:   cfg.Pipeline,
		Ingest:     cfg.Ingest,
		Pagination: cfg.API.Pagination,
	}
}

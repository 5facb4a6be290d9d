package api

import (
	"github.com/cleavehq/cleave/internal/config"
	"github.com/cleavehq/cleave/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	EngineConfig config.EngineConfig
	Embeddings   config.EmbeddingsConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Engine:    infra.Engine,
			Templates: infra.Templates,
			Images:    infra.Images,
			Texts:     infra.Texts,
			Jobs:      infra.Jobs,
		},
		EngineConfig: cfg.Engine,
		Embeddings:   cfg.Embeddings,
	}
}

// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (logging,
// storage, the PDF engine, embedding oracles, the template store) that the
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cleavehq/cleave/internal/config"
	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/internal/templates"
	"github.com/cleavehq/cleave/pkg/jobs"
	"github.com/cleavehq/cleave/pkg/lifecycle"
	"github.com/cleavehq/cleave/pkg/storage"
)

// Infrastructure holds the core systems required by the domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, blob storage, PDF processing, and the embedding backends.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Engine    pdf.Engine
	Templates *templates.Store
	Images    embeddings.ImageEmbedder
	Texts     embeddings.TextEmbedder
	Jobs      *jobs.Tracker
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	images, err := embeddings.NewCLIPImage(
		cfg.Embeddings.CLIPBaseURL,
		cfg.Embeddings.CLIPAPIKey,
		cfg.Embeddings.CLIPModel,
	)
	if err != nil {
		return nil, fmt.Errorf("image embedder init failed: %w", err)
	}

	texts, err := newTextEmbedder(&cfg.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("text embedder init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Engine:    pdf.New(cfg.PDF, logger),
		Templates: templates.NewStore(cfg.Engine.TemplatesPath, logger),
		Images:    images,
		Texts:     texts,
		Jobs:      jobs.NewTracker(),
	}, nil
}

// Start registers the infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

func newTextEmbedder(cfg *config.EmbeddingsConfig) (embeddings.TextEmbedder, error) {
	switch cfg.TextProvider {
	case config.TextProviderOllama:
		return embeddings.NewOllamaText(cfg.OllamaHost, cfg.OllamaModel, cfg.MaxTextChars)
	case config.TextProviderOpenAI:
		return embeddings.NewOpenAIText(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTextChars), nil
	default:
		return nil, fmt.Errorf("unknown text provider: %q", cfg.TextProvider)
	}
}

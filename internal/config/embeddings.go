package config

import (
	"fmt"
	"os"
	"strconv"
)

// Supported text embedding providers.
const (
	TextProviderOllama = "ollama"
	TextProviderOpenAI = "openai"
)

const (
	EnvEmbeddingsTextProvider = "CLEAVE_EMBEDDINGS_TEXT_PROVIDER"
	EnvEmbeddingsOllamaHost   = "CLEAVE_EMBEDDINGS_OLLAMA_HOST"
	EnvEmbeddingsOllamaModel  = "CLEAVE_EMBEDDINGS_OLLAMA_MODEL"
	EnvEmbeddingsOpenAIBase   = "CLEAVE_EMBEDDINGS_OPENAI_BASE_URL"
	EnvEmbeddingsOpenAIModel  = "CLEAVE_EMBEDDINGS_OPENAI_MODEL"
	EnvEmbeddingsCLIPBase     = "CLEAVE_EMBEDDINGS_CLIP_BASE_URL"
	EnvEmbeddingsCLIPModel    = "CLEAVE_EMBEDDINGS_CLIP_MODEL"
	EnvEmbeddingsMaxTextChars = "CLEAVE_EMBEDDINGS_MAX_TEXT_CHARS"

	// Credentials are environment-only and never read from TOML.
	EnvEmbeddingsOpenAIAPIKey = "CLEAVE_OPENAI_API_KEY"
	EnvEmbeddingsCLIPAPIKey   = "CLEAVE_CLIP_API_KEY"
)

// EmbeddingsConfig selects and parameterizes the embedding oracles: one text
// provider and the CLIP-compatible image endpoint.
type EmbeddingsConfig struct {
	TextProvider  string `toml:"text_provider"`
	OllamaHost    string `toml:"ollama_host"`
	OllamaModel   string `toml:"ollama_model"`
	OpenAIBaseURL string `toml:"openai_base_url"`
	OpenAIModel   string `toml:"openai_model"`
	CLIPBaseURL   string `toml:"clip_base_url"`
	CLIPModel     string `toml:"clip_model"`
	// MaxTextChars caps text sent to the embedding provider.
	MaxTextChars int `toml:"max_text_chars"`

	OpenAIAPIKey string `toml:"-"`
	CLIPAPIKey   string `toml:"-"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EmbeddingsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EmbeddingsConfig) Merge(overlay *EmbeddingsConfig) {
	if overlay.TextProvider != "" {
		c.TextProvider = overlay.TextProvider
	}
	if overlay.OllamaHost != "" {
		c.OllamaHost = overlay.OllamaHost
	}
	if overlay.OllamaModel != "" {
		c.OllamaModel = overlay.OllamaModel
	}
	if overlay.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = overlay.OpenAIBaseURL
	}
	if overlay.OpenAIModel != "" {
		c.OpenAIModel = overlay.OpenAIModel
	}
	if overlay.CLIPBaseURL != "" {
		c.CLIPBaseURL = overlay.CLIPBaseURL
	}
	if overlay.CLIPModel != "" {
		c.CLIPModel = overlay.CLIPModel
	}
	if overlay.MaxTextChars != 0 {
		c.MaxTextChars = overlay.MaxTextChars
	}
}

func (c *EmbeddingsConfig) loadDefaults() {
	if c.TextProvider == "" {
		c.TextProvider = TextProviderOllama
	}
	if c.OllamaHost == "" {
		c.OllamaHost = "http://localhost:11434"
	}
	if c.OllamaModel == "" {
		c.OllamaModel = "nomic-embed-text"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "text-embedding-3-small"
	}
	if c.CLIPBaseURL == "" {
		c.CLIPBaseURL = "http://localhost:8001/v1"
	}
	if c.CLIPModel == "" {
		c.CLIPModel = "ViT-B-32"
	}
	if c.MaxTextChars == 0 {
		c.MaxTextChars = 30000
	}
}

func (c *EmbeddingsConfig) loadEnv() {
	if v := os.Getenv(EnvEmbeddingsTextProvider); v != "" {
		c.TextProvider = v
	}
	if v := os.Getenv(EnvEmbeddingsOllamaHost); v != "" {
		c.OllamaHost = v
	}
	if v := os.Getenv(EnvEmbeddingsOllamaModel); v != "" {
		c.OllamaModel = v
	}
	if v := os.Getenv(EnvEmbeddingsOpenAIBase); v != "" {
		c.OpenAIBaseURL = v
	}
	if v := os.Getenv(EnvEmbeddingsOpenAIModel); v != "" {
		c.OpenAIModel = v
	}
	if v := os.Getenv(EnvEmbeddingsCLIPBase); v != "" {
		c.CLIPBaseURL = v
	}
	if v := os.Getenv(EnvEmbeddingsCLIPModel); v != "" {
		c.CLIPModel = v
	}
	if v := os.Getenv(EnvEmbeddingsMaxTextChars); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTextChars = n
		}
	}

	c.OpenAIAPIKey = os.Getenv(EnvEmbeddingsOpenAIAPIKey)
	c.CLIPAPIKey = os.Getenv(EnvEmbeddingsCLIPAPIKey)
}

func (c *EmbeddingsConfig) validate() error {
	switch c.TextProvider {
	case TextProviderOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("ollama_host required for ollama provider")
		}
	case TextProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%s required for openai provider", EnvEmbeddingsOpenAIAPIKey)
		}
	default:
		return fmt.Errorf("unknown text provider: %q", c.TextProvider)
	}
	if c.MaxTextChars < 1 {
		return fmt.Errorf("max_text_chars must be positive: %d", c.MaxTextChars)
	}
	return nil
}

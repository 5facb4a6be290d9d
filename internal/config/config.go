package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCleaveEnv             = "CLEAVE_ENV"
	EnvCleaveShutdownTimeout = "CLEAVE_SHUTDOWN_TIMEOUT"
	EnvCleaveVersion         = "CLEAVE_VERSION"
)

var storageEnv = &storage.Env{
	Driver:           "CLEAVE_STORAGE_DRIVER",
	Root:             "CLEAVE_STORAGE_ROOT",
	ContainerName:    "CLEAVE_STORAGE_CONTAINER_NAME",
	ConnectionString: "CLEAVE_STORAGE_CONNECTION_STRING",
}

var pdfEnv = &pdf.Env{
	DPI:         "CLEAVE_PDF_DPI",
	PopplerPath: "CLEAVE_PDF_POPPLER_PATH",
	OCREnabled:  "CLEAVE_PDF_OCR_ENABLED",
	OCRLanguage: "CLEAVE_PDF_OCR_LANGUAGE",
}

// Config is the root configuration for the Cleave service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	API             APIConfig        `toml:"api"`
	Engine          EngineConfig     `toml:"engine"`
	Embeddings      EmbeddingsConfig `toml:"embeddings"`
	PDF             pdf.Config       `toml:"pdf"`
	Storage         storage.Config   `toml:"storage"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the CLEAVE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCleaveEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Engine.Merge(&overlay.Engine)
	c.Embeddings.Merge(&overlay.Embeddings)
	c.PDF.Merge(&overlay.PDF)
	c.Storage.Merge(&overlay.Storage)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Engine.Finalize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Embeddings.Finalize(); err != nil {
		return fmt.Errorf("embeddings: %w", err)
	}
	if err := c.PDF.Finalize(pdfEnv); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCleaveShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCleaveVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCleaveEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvEngineImageGate      = "CLEAVE_ENGINE_IMAGE_GATE"
	EnvEngineMatchThreshold = "CLEAVE_ENGINE_MATCH_THRESHOLD"
	EnvEngineMinAreaRatio   = "CLEAVE_ENGINE_MIN_AREA_RATIO"
	EnvEngineWorkers        = "CLEAVE_ENGINE_WORKERS"
	EnvEngineTemplatesPath  = "CLEAVE_ENGINE_TEMPLATES_PATH"
	EnvEngineUploadsDir     = "CLEAVE_ENGINE_UPLOADS_DIR"
)

// EngineConfig holds the splitting engine's tuning parameters.
type EngineConfig struct {
	// ImageGate is the minimum image similarity a template must exceed
	// before its text similarity is consulted at all.
	ImageGate float64 `toml:"image_gate"`
	// MatchThreshold is the fused score a candidate must exceed for the
	// page to count as a first page.
	MatchThreshold float64 `toml:"match_threshold"`
	// MinAreaRatio is the smallest region area, as a fraction of the page,
	// that content detection will accept.
	MinAreaRatio float64 `toml:"min_area_ratio"`
	// Workers caps concurrent per-page analysis during a split.
	Workers int `toml:"workers"`
	// TemplatesPath locates the JSON template store.
	TemplatesPath string `toml:"templates_path"`
	// UploadsDir holds spooled request uploads.
	UploadsDir string `toml:"uploads_dir"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.ImageGate != 0 {
		c.ImageGate = overlay.ImageGate
	}
	if overlay.MatchThreshold != 0 {
		c.MatchThreshold = overlay.MatchThreshold
	}
	if overlay.MinAreaRatio != 0 {
		c.MinAreaRatio = overlay.MinAreaRatio
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.TemplatesPath != "" {
		c.TemplatesPath = overlay.TemplatesPath
	}
	if overlay.UploadsDir != "" {
		c.UploadsDir = overlay.UploadsDir
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.ImageGate == 0 {
		c.ImageGate = 0.85
	}
	if c.MatchThreshold == 0 {
		c.MatchThreshold = 0.85
	}
	if c.MinAreaRatio == 0 {
		c.MinAreaRatio = 0.01
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.TemplatesPath == "" {
		c.TemplatesPath = "data/templates.json"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "data/uploads"
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineImageGate); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ImageGate = f
		}
	}
	if v := os.Getenv(EnvEngineMatchThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MatchThreshold = f
		}
	}
	if v := os.Getenv(EnvEngineMinAreaRatio); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinAreaRatio = f
		}
	}
	if v := os.Getenv(EnvEngineWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvEngineTemplatesPath); v != "" {
		c.TemplatesPath = v
	}
	if v := os.Getenv(EnvEngineUploadsDir); v != "" {
		c.UploadsDir = v
	}
}

func (c *EngineConfig) validate() error {
	if c.ImageGate < 0 || c.ImageGate > 1 {
		return fmt.Errorf("image_gate out of range: %v", c.ImageGate)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("match_threshold out of range: %v", c.MatchThreshold)
	}
	if c.MinAreaRatio <= 0 || c.MinAreaRatio >= 1 {
		return fmt.Errorf("min_area_ratio out of range: %v", c.MinAreaRatio)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive: %d", c.Workers)
	}
	return nil
}

package pdf

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds PDF processing parameters.
type Config struct {
	// DPI is the rasterization resolution.
	DPI int `toml:"dpi"`
	// PopplerPath optionally points at the directory containing the poppler
	// binaries; when empty, PATH lookup is used.
	PopplerPath string `toml:"poppler_path"`
	// OCREnabled turns on OCR fallback for pages with an empty text layer.
	// Requires a build with the ocr tag and a tesseract installation.
	OCREnabled bool `toml:"ocr_enabled"`
	// OCRLanguage is the tesseract language spec, e.g. "eng" or "eng+deu".
	OCRLanguage string `toml:"ocr_language"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	DPI         string
	PopplerPath string
	OCREnabled  string
	OCRLanguage string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
	if overlay.PopplerPath != "" {
		c.PopplerPath = overlay.PopplerPath
	}
	if overlay.OCREnabled {
		c.OCREnabled = true
	}
	if overlay.OCRLanguage != "" {
		c.OCRLanguage = overlay.OCRLanguage
	}
}

func (c *Config) loadDefaults() {
	if c.DPI == 0 {
		c.DPI = 200
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = "eng"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.DPI != "" {
		if v := os.Getenv(env.DPI); v != "" {
			if dpi, err := strconv.Atoi(v); err == nil {
				c.DPI = dpi
			}
		}
	}
	if env.PopplerPath != "" {
		if v := os.Getenv(env.PopplerPath); v != "" {
			c.PopplerPath = v
		}
	}
	if env.OCREnabled != "" {
		if v := os.Getenv(env.OCREnabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.OCREnabled = enabled
			}
		}
	}
	if env.OCRLanguage != "" {
		if v := os.Getenv(env.OCRLanguage); v != "" {
			c.OCRLanguage = v
		}
	}
}

func (c *Config) validate() error {
	if c.DPI < 72 || c.DPI > 600 {
		return fmt.Errorf("dpi out of range: %d", c.DPI)
	}
	return nil
}

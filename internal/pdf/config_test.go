package pdf_test

import (
	"testing"

	"github.com/cleavehq/cleave/internal/pdf"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pdf.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DPI != 200 {
		t.Errorf("dpi: got %d, want 200", cfg.DPI)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("ocr language: got %q, want eng", cfg.OCRLanguage)
	}
	if cfg.OCREnabled {
		t.Error("ocr enabled by default")
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PDF_DPI", "300")
	t.Setenv("TEST_PDF_OCR_ENABLED", "true")
	t.Setenv("TEST_PDF_OCR_LANGUAGE", "eng+deu")

	env := &pdf.Env{
		DPI:         "TEST_PDF_DPI",
		OCREnabled:  "TEST_PDF_OCR_ENABLED",
		OCRLanguage: "TEST_PDF_OCR_LANGUAGE",
	}

	cfg := pdf.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DPI != 300 {
		t.Errorf("dpi: got %d, want 300", cfg.DPI)
	}
	if !cfg.OCREnabled {
		t.Error("ocr not enabled")
	}
	if cfg.OCRLanguage != "eng+deu" {
		t.Errorf("ocr language: got %q", cfg.OCRLanguage)
	}
}

func TestConfigFinalizeValidatesDPI(t *testing.T) {
	tests := []struct {
		name string
		dpi  int
	}{
		{"too low", 40},
		{"too high", 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pdf.Config{DPI: tt.dpi}
			if err := cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

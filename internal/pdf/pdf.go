// Package pdf wraps the PDF oracles the pipeline depends on: rasterization
// (poppler), per-page text extraction (ledongthuc/pdf), lossless page-range
// copying and page counting (pdfcpu), and optional OCR (tesseract, behind
// the ocr build tag).
package pdf

import (
	"context"
	"image"
	"io"
	"log/slog"
)

// Engine is the oracle surface the pipeline consumes. Page indices are
// 0-based; CopyPageRange copies the half-open range [start, end) without
// re-rendering pages, preserving fonts and embedded resources.
type Engine interface {
	PageCount(path string) (int, error)
	PageCountBytes(data []byte) (int, error)
	Rasterize(ctx context.Context, path string) ([]image.Image, error)
	ExtractText(ctx context.Context, path string) ([]string, error)
	CopyPageRange(path string, start, end int, w io.Writer) error
	// Recognize runs OCR on a page image. Returns ErrOCRNotEnabled when the
	// binary was built without OCR support or OCR is disabled by config.
	Recognize(img image.Image) (string, error)
}

// Processor implements Engine with poppler, ledongthuc/pdf, pdfcpu, and
// tesseract.
type Processor struct {
	cfg    Config
	logger *slog.Logger
	ocr    *ocrClient
}

// New creates a Processor. OCR initialization failures are logged and
// downgrade to text-layer-only extraction rather than failing startup.
func New(cfg Config, logger *slog.Logger) *Processor {
	p := &Processor{
		cfg:    cfg,
		logger: logger.With("system", "pdf"),
	}

	if cfg.OCREnabled {
		ocr, err := newOCRClient(cfg.OCRLanguage)
		if err != nil {
			p.logger.Warn("ocr unavailable, falling back to text layer only", "error", err)
		} else {
			p.ocr = ocr
		}
	}

	return p
}

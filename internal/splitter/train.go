package splitter

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/internal/templates"
	"github.com/cleavehq/cleave/internal/vision"
)

// previewPrefix namespaces training preview renders within the storage sink.
const previewPrefix = "previews/"

// TrainResult reports a completed training run: the stored template plus
// the pipeline renders shown to the operator for visual verification.
type TrainResult struct {
	Template      templates.Template `json:"template"`
	OriginalImage string             `json:"original_image"`
	CroppedImage  string             `json:"cropped_image"`
}

// PipelinePreview is a training dry run: content detection output without
// any persistence.
type PipelinePreview struct {
	Region        vision.Region `json:"region"`
	OriginalImage string        `json:"original_image"`
	CroppedImage  string        `json:"cropped_image"`
}

// Train produces a template from one known-good single document: the first
// page is localized, cropped, and embedded, preview renders are stored, and
// the template is upserted under name, replacing any prior entry. Training
// the same document under the same name again yields identical inference
// behavior.
func (p *Pipeline) Train(ctx context.Context, path, name string) (*TrainResult, error) {
	first, text, err := p.loadFirstPage(ctx, path)
	if err != nil {
		return nil, err
	}

	profile, err := p.analyzer.Analyze(ctx, first, text)
	if err != nil {
		return nil, fmt.Errorf("analyze training page: %w", err)
	}

	originalPNG, err := encodePNG(first)
	if err != nil {
		return nil, err
	}
	croppedPNG, err := encodePNG(profile.Cropped)
	if err != nil {
		return nil, err
	}

	originalKey := previewPrefix + name + "/original.png"
	croppedKey := previewPrefix + name + "/cropped.png"

	if err := p.assembler.sink.Upload(ctx, originalKey, bytes.NewReader(originalPNG), "image/png"); err != nil {
		return nil, fmt.Errorf("store original preview: %w", err)
	}
	if err := p.assembler.sink.Upload(ctx, croppedKey, bytes.NewReader(croppedPNG), "image/png"); err != nil {
		return nil, fmt.Errorf("store cropped preview: %w", err)
	}

	t := templates.Template{
		Name:               name,
		ImageEmbedding:     profile.ImageVector,
		TextEmbedding:      profile.TextVector,
		Region:             profile.Region,
		OriginalPreviewKey: originalKey,
		CroppedPreviewKey:  croppedKey,
		TrainedAt:          time.Now().UTC(),
	}

	if err := p.templates.Upsert(t); err != nil {
		return nil, fmt.Errorf("persist template: %w", err)
	}

	p.logger.Info("template trained", "name", name, "region", t.Region)

	return &TrainResult{
		Template:      t,
		OriginalImage: dataURL(originalPNG),
		CroppedImage:  dataURL(croppedPNG),
	}, nil
}

// Preview runs content detection on the first page without persisting
// anything, for operator inspection before committing a training run.
func (p *Pipeline) Preview(ctx context.Context, path string) (*PipelinePreview, error) {
	first, _, err := p.loadFirstPage(ctx, path)
	if err != nil {
		return nil, err
	}

	region, cropped := p.analyzer.Localize(first)

	originalPNG, err := encodePNG(first)
	if err != nil {
		return nil, err
	}
	croppedPNG, err := encodePNG(cropped)
	if err != nil {
		return nil, err
	}

	return &PipelinePreview{
		Region:        region,
		OriginalImage: dataURL(originalPNG),
		CroppedImage:  dataURL(croppedPNG),
	}, nil
}

// loadFirstPage rasterizes and extracts text for page 0 only.
func (p *Pipeline) loadFirstPage(ctx context.Context, path string) (image.Image, string, error) {
	pages, texts, err := p.loadPages(ctx, path)
	if err != nil {
		return nil, "", err
	}
	if len(pages) == 0 {
		return nil, "", pdf.ErrNoPages
	}
	return pages[0], texts[0], nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func dataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// Package analysis turns a raw page into the material the matcher and
// trainer compare: the localized content region, the cropped image, and the
// image and text embeddings derived from them. Embedding backends are
// injected, so the analyzer is testable with stub oracles returning fixed
// vectors.
package analysis

import (
	"context"
	"fmt"
	"image"

	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/vision"
)

// PageProfile is the embedding-level view of one page.
type PageProfile struct {
	Region      vision.Region
	Cropped     image.Image
	ImageVector embeddings.Vector
	TextVector  embeddings.Vector
}

// Analyzer localizes and embeds pages.
type Analyzer struct {
	images       embeddings.ImageEmbedder
	texts        embeddings.TextEmbedder
	minAreaRatio float64
}

// New creates an Analyzer with the given embedding oracles.
func New(images embeddings.ImageEmbedder, texts embeddings.TextEmbedder, minAreaRatio float64) *Analyzer {
	if minAreaRatio <= 0 {
		minAreaRatio = vision.DefaultMinAreaRatio
	}
	return &Analyzer{
		images:       images,
		texts:        texts,
		minAreaRatio: minAreaRatio,
	}
}

// Localize detects the page's content region and returns it with the crop.
func (a *Analyzer) Localize(img image.Image) (vision.Region, image.Image) {
	region := vision.Locate(img, a.minAreaRatio)
	return region, vision.Crop(img, region)
}

// Analyze localizes the page, crops it, and embeds the crop and the page text.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image, text string) (*PageProfile, error) {
	region, cropped := a.Localize(img)

	imageVec, err := a.images.EmbedImage(ctx, cropped)
	if err != nil {
		return nil, fmt.Errorf("image embedding: %w", err)
	}

	textVec, err := a.texts.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("text embedding: %w", err)
	}

	return &PageProfile{
		Region:      region,
		Cropped:     cropped,
		ImageVector: imageVec,
		TextVector:  textVec,
	}, nil
}

// Package embeddings defines the embedding oracle contracts and the cosine
// similarity used to compare them. Image and text embeddings are distinct
// kinds and are never compared across kind; the matcher enforces this by
// construction, comparing page image vectors only against template image
// vectors and likewise for text.
package embeddings

import (
	"context"
	"image"
	"math"
)

// Vector is a fixed-length embedding.
type Vector []float32

// TextEmbedder produces a text embedding. Implementations truncate input
// beyond their model's length cap before embedding.
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) (Vector, error)
}

// ImageEmbedder produces an image embedding.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, img image.Image) (Vector, error)
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Returns exactly 0 when either vector has zero magnitude, rather than
// dividing by zero; a degenerate embedding matches nothing.
func Cosine(a, b Vector) float64 {
	n := min(len(a), len(b))

	var dot, normA, normB float64
	for i := range n {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Truncate caps text at maxChars characters. Embedding backends impose token
// limits; a character cap applied before the request keeps oversized page
// text from failing the call.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}

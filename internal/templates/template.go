// Package templates implements the trained-template domain: the template
// type, the flat-file store that persists templates between runs, and the
// read endpoints for inspecting trained document types.
package templates

import (
	"time"

	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/vision"
)

// Template is the stored fingerprint of one trained document type: the
// embeddings of its first page, the content region they were produced from,
// and optional preview render keys. Templates are never mutated in place;
// re-training under the same name replaces the entry.
type Template struct {
	Name               string            `json:"name"`
	ImageEmbedding     embeddings.Vector `json:"image_embedding"`
	TextEmbedding      embeddings.Vector `json:"text_embedding"`
	Region             vision.Region     `json:"region"`
	OriginalPreviewKey string            `json:"original_preview_key,omitempty"`
	CroppedPreviewKey  string            `json:"cropped_preview_key,omitempty"`
	TrainedAt          time.Time         `json:"trained_at"`
}

// Summary is the listing view of a template, without embedding payloads.
type Summary struct {
	Name       string        `json:"name"`
	Region     vision.Region `json:"region"`
	HasPreview bool          `json:"has_preview"`
	TrainedAt  time.Time     `json:"trained_at"`
}

// Summarize returns the template's listing view.
func (t *Template) Summarize() Summary {
	return Summary{
		Name:       t.Name,
		Region:     t.Region,
		HasPreview: t.OriginalPreviewKey != "" && t.CroppedPreviewKey != "",
		TrainedAt:  t.TrainedAt,
	}
}

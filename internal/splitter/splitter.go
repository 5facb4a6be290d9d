// Package splitter implements the first-page detection and segmentation
// engine: matching pages against trained templates, converting the ordered
// match decisions into document boundaries, and assembling one output PDF
// per boundary.
package splitter

import "math"

// MatchResult scores one page against one template.
type MatchResult struct {
	Template        string  `json:"template"`
	ImageSimilarity float64 `json:"image_similarity"`
	TextSimilarity  float64 `json:"text_similarity"`
	FusedScore      float64 `json:"fused_score"`
}

// PageDecision is the per-page outcome of matching. When Matched is true,
// BestMatch is non-nil and its fused score exceeds the match threshold.
// Candidates holds every template that cleared the image gate, ranked by
// fused score descending.
type PageDecision struct {
	Page       int           `json:"page"`
	Matched    bool          `json:"matched"`
	BestMatch  *MatchResult  `json:"best_match,omitempty"`
	Candidates []MatchResult `json:"candidates,omitempty"`
}

// Boundary is a half-open page range [Start, End) attributed to one output
// document. Boundaries produced by Segment are contiguous, non-overlapping,
// ordered by Start, and jointly cover [0, totalPages).
type Boundary struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pages returns the number of pages in the boundary.
func (b Boundary) Pages() int {
	return b.End - b.Start
}

// SplitDocument describes one written output: its deterministic filename,
// its storage key, the 1-indexed page range for display, and the first-page
// match evidence that justified the boundary.
type SplitDocument struct {
	Filename  string       `json:"filename"`
	Key       string       `json:"key"`
	StartPage int          `json:"start_page"`
	EndPage   int          `json:"end_page"`
	PageCount int          `json:"page_count"`
	Evidence  *MatchResult `json:"evidence,omitempty"`
}

// roundScore rounds similarity scores to 4 decimals for display and audit.
func roundScore(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// roundedEvidence returns a display copy of a match result with all scores
// rounded.
func roundedEvidence(m *MatchResult) *MatchResult {
	if m == nil {
		return nil
	}
	return &MatchResult{
		Template:        m.Template,
		ImageSimilarity: roundScore(m.ImageSimilarity),
		TextSimilarity:  roundScore(m.TextSimilarity),
		FusedScore:      roundScore(m.FusedScore),
	}
}

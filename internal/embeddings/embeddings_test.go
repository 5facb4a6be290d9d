package embeddings_test

import (
	"math"
	"testing"

	"github.com/cleavehq/cleave/internal/embeddings"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        embeddings.Vector
		b        embeddings.Vector
		expected float64
	}{
		{"identical", embeddings.Vector{1, 2, 3}, embeddings.Vector{1, 2, 3}, 1.0},
		{"orthogonal", embeddings.Vector{1, 0}, embeddings.Vector{0, 1}, 0.0},
		{"opposite", embeddings.Vector{1, 0}, embeddings.Vector{-1, 0}, -1.0},
		{"scaled is identical", embeddings.Vector{1, 2}, embeddings.Vector{3, 6}, 1.0},
		{"zero left", embeddings.Vector{0, 0}, embeddings.Vector{1, 2}, 0.0},
		{"zero right", embeddings.Vector{1, 2}, embeddings.Vector{0, 0}, 0.0},
		{"both zero", embeddings.Vector{0, 0}, embeddings.Vector{0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := embeddings.Cosine(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineRange(t *testing.T) {
	a := embeddings.Vector{0.3, -1.7, 2.2, 0.01}
	b := embeddings.Vector{-0.9, 0.4, 1.1, -2.5}

	got := embeddings.Cosine(a, b)
	if got < -1.0-1e-9 || got > 1.0+1e-9 {
		t.Errorf("similarity %v outside [-1, 1]", got)
	}
}

func TestCosineIsSymmetric(t *testing.T) {
	a := embeddings.Vector{0.5, 1.5, -0.25}
	b := embeddings.Vector{2.0, -1.0, 0.75}

	if ab, ba := embeddings.Cosine(a, b), embeddings.Cosine(b, a); math.Abs(ab-ba) > 1e-12 {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		expected string
	}{
		{"under cap", "hello", 10, "hello"},
		{"at cap", "hello", 5, "hello"},
		{"over cap", "hello world", 5, "hello"},
		{"zero cap disables", "hello", 0, "hello"},
		{"negative cap disables", "hello", -1, "hello"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := embeddings.Truncate(tt.text, tt.maxChars); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

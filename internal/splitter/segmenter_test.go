package splitter_test

import (
	"errors"
	"testing"

	"github.com/cleavehq/cleave/internal/splitter"
)

func decisionsFromFirsts(total int, firsts ...int) []splitter.PageDecision {
	decisions := make([]splitter.PageDecision, total)
	for i := range decisions {
		decisions[i].Page = i
	}
	for _, f := range firsts {
		decisions[f].Matched = true
	}
	return decisions
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		firsts   []int
		expected []splitter.Boundary
	}{
		{
			"two documents",
			6,
			[]int{0, 3},
			[]splitter.Boundary{{Start: 0, End: 3}, {Start: 3, End: 6}},
		},
		{
			"single document",
			4,
			[]int{0},
			[]splitter.Boundary{{Start: 0, End: 4}},
		},
		{
			"adjacent matches yield single-page document",
			5,
			[]int{0, 1, 2},
			[]splitter.Boundary{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 5}},
		},
		{
			"trailing pages attach to last document",
			7,
			[]int{0, 2},
			[]splitter.Boundary{{Start: 0, End: 2}, {Start: 2, End: 7}},
		},
		{
			"leading unmatched pages form preamble document",
			6,
			[]int{2, 4},
			[]splitter.Boundary{{Start: 0, End: 2}, {Start: 2, End: 4}, {Start: 4, End: 6}},
		},
		{
			"every page matched",
			3,
			[]int{0, 1, 2},
			[]splitter.Boundary{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boundaries, err := splitter.Segment(decisionsFromFirsts(tt.total, tt.firsts...), tt.total)
			if err != nil {
				t.Fatalf("segment failed: %v", err)
			}

			if len(boundaries) != len(tt.expected) {
				t.Fatalf("got %d boundaries, want %d", len(boundaries), len(tt.expected))
			}
			for i, b := range boundaries {
				if b != tt.expected[i] {
					t.Errorf("boundary %d: got %+v, want %+v", i, b, tt.expected[i])
				}
			}
		})
	}
}

func TestSegmentPartitionsAllPages(t *testing.T) {
	total := 11
	boundaries, err := splitter.Segment(decisionsFromFirsts(total, 1, 4, 4, 9), total)
	if err != nil {
		t.Fatalf("segment failed: %v", err)
	}

	covered := 0
	for i, b := range boundaries {
		if b.End <= b.Start {
			t.Errorf("boundary %d is empty: %+v", i, b)
		}
		if i > 0 && b.Start != boundaries[i-1].End {
			t.Errorf("gap before boundary %d: %+v after %+v", i, b, boundaries[i-1])
		}
		covered += b.Pages()
	}

	if boundaries[0].Start != 0 {
		t.Errorf("first boundary starts at %d, want 0", boundaries[0].Start)
	}
	if covered != total {
		t.Errorf("boundaries cover %d pages, want %d", covered, total)
	}
}

func TestSegmentNoMatches(t *testing.T) {
	_, err := splitter.Segment(decisionsFromFirsts(5), 5)
	if !errors.Is(err, splitter.ErrNoFirstPages) {
		t.Fatalf("got %v, want ErrNoFirstPages", err)
	}
}

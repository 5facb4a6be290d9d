package splitter

// Segment converts the ordered per-page decisions into document boundaries.
//
// Every matched page opens a document that runs until the next matched page
// or the end of the composite, so trailing unmatched pages always attach to
// the last document and two adjacent matched pages yield a single-page
// document for the first of the pair. A false negative inside a short
// document therefore produces an erroneous split rather than being
// suppressed; that is a training or threshold quality issue, not something
// the segmenter second-guesses. A composite with no matched page at all is
// not splittable and fails outright.
func Segment(decisions []PageDecision, totalPages int) ([]Boundary, error) {
	var firsts []int
	for _, d := range decisions {
		if d.Matched {
			firsts = append(firsts, d.Page)
		}
	}

	if len(firsts) == 0 {
		return nil, ErrNoFirstPages
	}

	// Leading unmatched pages form a preamble document rather than being
	// dropped, keeping the boundaries a partition of [0, totalPages).
	if firsts[0] != 0 {
		firsts = append([]int{0}, firsts...)
	}

	// Synthetic terminal marker closes the final boundary at totalPages.
	firsts = append(firsts, totalPages)

	boundaries := make([]Boundary, 0, len(firsts)-1)
	for i := 0; i < len(firsts)-1; i++ {
		boundaries = append(boundaries, Boundary{Start: firsts[i], End: firsts[i+1]})
	}

	return boundaries, nil
}

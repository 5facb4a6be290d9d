package splitter

import (
	"sort"

	"github.com/cleavehq/cleave/internal/analysis"
	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/templates"
)

// Fusion weights. Image similarity dominates because layout and watermark
// position are the primary discriminators between document types; text
// similarity disambiguates visually similar templates.
const (
	imageWeight = 0.7
	textWeight  = 0.3
)

// Matcher fuses image and text similarity into per-page first-page decisions.
//
// ImageGate and MatchThreshold share a default but are independent knobs:
// the gate prunes templates before text similarity is computed, the
// threshold decides whether the best fused score counts as a match.
type Matcher struct {
	ImageGate      float64
	MatchThreshold float64
}

// Match scores the page against every template. Templates whose image
// similarity does not exceed the gate are excluded from fusion entirely;
// text similarity alone never produces a candidate. The page matches only
// when the best fused score strictly exceeds the match threshold.
//
// Candidates are ranked by fused score descending with a stable sort, so
// exact ties resolve to the earlier template in iteration order, which is
// the lexicographically smaller name given the store returns templates sorted.
func (m Matcher) Match(page int, profile *analysis.PageProfile, tmpls []templates.Template) PageDecision {
	var candidates []MatchResult

	for _, t := range tmpls {
		imageSim := embeddings.Cosine(profile.ImageVector, t.ImageEmbedding)
		if imageSim <= m.ImageGate {
			continue
		}

		textSim := embeddings.Cosine(profile.TextVector, t.TextEmbedding)
		candidates = append(candidates, MatchResult{
			Template:        t.Name,
			ImageSimilarity: imageSim,
			TextSimilarity:  textSim,
			FusedScore:      imageWeight*imageSim + textWeight*textSim,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FusedScore > candidates[j].FusedScore
	})

	decision := PageDecision{Page: page, Candidates: candidates}
	if len(candidates) > 0 && candidates[0].FusedScore > m.MatchThreshold {
		decision.Matched = true
		decision.BestMatch = &candidates[0]
	}

	return decision
}

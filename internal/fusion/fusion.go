// Package fusion combines lexical and semantic signals into one
// calibrated similarity per candidate and selects each sentence's
// winning match.
package fusion

import "plagcheck/internal/domain"

// Fuser combines scores according to the granted mode. The 60/40
// weighting is a fixed product constant: the semantic signal is the
// differentiator hybrid mode adds.
type Fuser struct {
	semanticWeight float64
	lexicalWeight  float64
	threshold      float64
}

// New creates a fuser with the given weights and minimum-match threshold.
func New(semanticWeight, lexicalWeight, threshold float64) *Fuser {
	return &Fuser{
		semanticWeight: semanticWeight,
		lexicalWeight:  lexicalWeight,
		threshold:      threshold,
	}
}

// Threshold returns the minimum fused score a winning match must reach.
func (f *Fuser) Threshold() float64 { return f.threshold }

// Fuse computes the fused score of a candidate in place. Lexical-only
// mode passes the lexical score through; hybrid mode applies the
// weighted sum. A literal exact containment hit is a certain match in
// either mode and pins the fused score to 1.
func (f *Fuser) Fuse(c *domain.MatchCandidate) {
	if c.Lexical.ExactContainment >= 1.0 {
		c.FusedScore = 1.0
		return
	}
	if !c.HasSemantic {
		c.FusedScore = clamp01(c.LexicalScore)
		return
	}
	c.FusedScore = clamp01(f.semanticWeight*c.SemanticScore + f.lexicalWeight*c.LexicalScore)
}

// Select picks the winning candidate: the maximum fused score at or
// above the threshold. Ties keep the earliest candidate in shortlist
// order, so selection is deterministic.
func (f *Fuser) Select(candidates []domain.MatchCandidate) (domain.MatchCandidate, bool) {
	best := -1
	for i, c := range candidates {
		if c.FusedScore < f.threshold {
			continue
		}
		if best < 0 || c.FusedScore > candidates[best].FusedScore {
			best = i
		}
	}
	if best < 0 {
		return domain.MatchCandidate{}, false
	}
	return candidates[best], true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package search

import (
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
)

// diversify applies Maximal Marginal Relevance: greedily select the
// candidate maximizing lambda*relevance - (1-lambda)*maxSimToSelected,
// where relevance is the composite score min-max normalized over the
// pool. Selection is deterministic: ties go to the ascending product ID.
// Products already selected are skipped entirely, so no product ID
// appears twice. O(k*n) for k selections over n candidates.
func diversify(cands []candidate.Candidate, lambda float64, k int) []candidate.Candidate {
	if k <= 0 || len(cands) == 0 {
		return nil
	}

	rel := normalizeRelevance(cands)

	selected := make([]candidate.Candidate, 0, k)
	seenProducts := make(map[string]bool, k)
	picked := make([]bool, len(cands))
	// maxSim[i] is the highest similarity between candidate i and any
	// already-selected candidate, maintained incrementally.
	maxSim := make([]float64, len(cands))

	for len(selected) < k {
		best := -1
		bestScore := 0.0

		for i := range cands {
			if picked[i] || seenProducts[cands[i].ProductID] {
				continue
			}

			score := lambda*rel[i] - (1-lambda)*maxSim[i]
			if best == -1 || score > bestScore ||
				(score == bestScore && cands[i].ProductID < cands[best].ProductID) {
				best = i
				bestScore = score
			}
		}

		if best == -1 {
			break
		}

		picked[best] = true
		seenProducts[cands[best].ProductID] = true
		cands[best].AddReason(candidate.ReasonDiversified)
		selected = append(selected, cands[best])

		for i := range cands {
			if picked[i] || seenProducts[cands[i].ProductID] {
				continue
			}
			if sim := similarity(&cands[i], &cands[best]); sim > maxSim[i] {
				maxSim[i] = sim
			}
		}
	}

	return selected
}

// normalizeRelevance min-max normalizes composite scores to [0,1]. A flat
// pool normalizes to all ones: selection then falls to diversity and the
// product-ID tie-break.
func normalizeRelevance(cands []candidate.Candidate) []float64 {
	lo, hi := cands[0].CompositeScore, cands[0].CompositeScore
	for i := range cands {
		s := cands[i].CompositeScore
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	rel := make([]float64, len(cands))
	for i := range cands {
		if hi == lo {
			rel[i] = 1
			continue
		}
		rel[i] = (cands[i].CompositeScore - lo) / (hi - lo)
	}
	return rel
}

// similarity is the cosine similarity between two candidates' stored
// vectors; a missing or mismatched vector contributes zero redundancy.
func similarity(a, b *candidate.Candidate) float64 {
	if len(a.Vector) == 0 || len(b.Vector) == 0 {
		return 0
	}
	cos, err := vector.Cosine(a.Vector, b.Vector)
	if err != nil {
		return 0
	}
	return cos
}

package search

import (
	"sort"

	"github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
)

// rerank recomputes exact cosine similarity against each candidate's
// stored vector (the ANN stage is approximate and can mis-rank close
// vectors), blends it with the region confidence, engagement prior, and
// cross-level penalty, and reorders descending by the composite.
//
// Composite = w_exact*exactSim01 + w_region*regionConf + w_prior*prior
// - w_level*levelMismatch, clamped to [0,1], where exactSim01 maps
// cosine [-1,1] onto [0,1]. A candidate whose stored vector is missing
// keeps its ANN score as the exact term.
func rerank(
	cands []candidate.Candidate,
	query []float32,
	priors map[string]float64,
	w profile.RerankWeights,
	wholeImageQuery bool,
) []candidate.Candidate {
	for i := range cands {
		c := &cands[i]

		exact01 := c.ANNScore
		if len(c.Vector) > 0 {
			if cos, err := vector.Cosine(query, c.Vector); err == nil {
				c.ExactScore = cos
				exact01 = (cos + 1) / 2
				c.AddReason(candidate.ReasonExactRescored)
			}
		}

		c.Prior = priors[c.ProductID]

		score := w.Exact*exact01 + w.Prior*c.Prior
		if c.Level == candidate.LevelRegion {
			score += w.Region * c.RegionConfidence
			if wholeImageQuery {
				score -= w.LevelPenalty
				c.AddReason(candidate.ReasonLevelPenalty)
			}
		}

		c.CompositeScore = clamp01(score)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return candidate.Less(&cands[i], &cands[j], composite)
	})
	return cands
}

func composite(c *candidate.Candidate) float64 { return c.CompositeScore }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

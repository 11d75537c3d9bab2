// Package candidate holds the pipeline's working record: a scored match
// progressively enriched by the retrieval, filtering, reranking, and
// boosting stages. Candidates live for one request and are never shared.
package candidate

import "github.com/kailas-cloud/visearch/internal/domain/catalog"

// Level is the granularity of the matched embedding.
type Level string

// Embedding levels.
const (
	LevelImage  Level = "image"
	LevelRegion Level = "region"
)

// Reason codes attached to candidates for observability.
const (
	ReasonANNMatch       = "ann_match"
	ReasonExactRescored  = "exact_rescored"
	ReasonRegionMatch    = "region_match"
	ReasonLevelPenalty   = "level_penalty"
	ReasonDiversified    = "mmr_selected"
	ReasonDegraded       = "degraded_partial"
	ReasonAttrsMissing   = "dropped:attrs_missing"
	ReasonFilteredPrefix = "filter:"
	ReasonBoostPrefix    = "boost:"
)

// Candidate is a single scored match flowing through the pipeline.
type Candidate struct {
	ProductID        string
	VariantID        string
	ImageID          string
	Level            Level
	RegionConfidence float64
	Vector           []float32

	ANNScore       float64
	ExactScore     float64
	Prior          float64
	CompositeScore float64

	Attributes *catalog.Attributes

	reasons []string
	seen    map[string]struct{}
}

// AddReason appends a reason code once, preserving insertion order.
func (c *Candidate) AddReason(code string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{}, 4)
	}
	if _, ok := c.seen[code]; ok {
		return
	}
	c.seen[code] = struct{}{}
	c.reasons = append(c.reasons, code)
}

// Reasons returns the accumulated reason codes in insertion order.
func (c *Candidate) Reasons() []string { return c.reasons }

// Less orders candidates for deterministic ranking: descending by score,
// ties broken by ascending product ID.
func Less(a, b *Candidate, score func(*Candidate) float64) bool {
	sa, sb := score(a), score(b)
	if sa != sb {
		return sa > sb
	}
	return a.ProductID < b.ProductID
}

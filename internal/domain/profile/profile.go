// Package profile holds the tenant ranking profile: fusion and rerank
// weights, MMR lambda, candidate-pool sizing, degraded-partition policy,
// and business rules. Profiles are tenant configuration, loaded from the
// profile store and falling back to engine defaults.
package profile

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/rule"
)

// DegradedPolicy decides what happens when a partition fails after retries.
type DegradedPolicy string

// Supported degraded-partition policies.
const (
	// PolicyFail fails the whole request on any partition failure.
	PolicyFail DegradedPolicy = "fail"
	// PolicyDegrade proceeds with the completed partitions and tags the
	// response as partial.
	PolicyDegrade DegradedPolicy = "degrade"
)

// Default ranking parameters. The exact-similarity weight floor comes from
// the ranking design: the ANN score is approximate, so the exact term must
// dominate the blend.
const (
	DefaultImageWeight    = 0.7
	DefaultTextWeight     = 0.3
	DefaultExactWeight    = 0.65
	DefaultRegionWeight   = 0.10
	DefaultPriorWeight    = 0.15
	DefaultLevelPenalty   = 0.10
	DefaultLambda         = 0.7
	DefaultPoolMultiplier = 5
	MinPoolSize           = 50
	MinExactWeight        = 0.6
)

// RerankWeights is the linear blend applied by the reranker.
type RerankWeights struct {
	Exact        float64 `json:"exact"`
	Region       float64 `json:"region"`
	Prior        float64 `json:"prior"`
	LevelPenalty float64 `json:"level_penalty"`
}

// Profile is a tenant's ranking configuration.
type Profile struct {
	OrgID          string         `json:"org_id"`
	ImageWeight    float64        `json:"image_weight"`
	TextWeight     float64        `json:"text_weight"`
	Rerank         RerankWeights  `json:"rerank"`
	Lambda         float64        `json:"lambda"`
	PoolMultiplier int            `json:"pool_multiplier"`
	Degraded       DegradedPolicy `json:"degraded_policy"`
	Rules          []rule.Rule    `json:"-"`
}

// Default returns the engine-default profile for an org.
func Default(orgID string) Profile {
	return Profile{
		OrgID:       orgID,
		ImageWeight: DefaultImageWeight,
		TextWeight:  DefaultTextWeight,
		Rerank: RerankWeights{
			Exact:        DefaultExactWeight,
			Region:       DefaultRegionWeight,
			Prior:        DefaultPriorWeight,
			LevelPenalty: DefaultLevelPenalty,
		},
		Lambda:         DefaultLambda,
		PoolMultiplier: DefaultPoolMultiplier,
		Degraded:       PolicyDegrade,
	}
}

// Validate checks profile invariants.
func (p Profile) Validate() error {
	if p.ImageWeight <= 0 || p.TextWeight < 0 {
		return fmt.Errorf("%w: fusion weights must be positive", domain.ErrInvalidRequest)
	}
	if p.Rerank.Exact < MinExactWeight {
		return fmt.Errorf("%w: exact weight %f below floor %f",
			domain.ErrInvalidRequest, p.Rerank.Exact, MinExactWeight)
	}
	if p.Rerank.Region < 0 || p.Rerank.Prior < 0 || p.Rerank.LevelPenalty < 0 {
		return fmt.Errorf("%w: rerank weights must be non-negative", domain.ErrInvalidRequest)
	}
	if p.Lambda < 0 || p.Lambda > 1 {
		return fmt.Errorf("%w: lambda must be in [0,1]", domain.ErrInvalidRequest)
	}
	if p.PoolMultiplier < 1 {
		return fmt.Errorf("%w: pool multiplier must be at least 1", domain.ErrInvalidRequest)
	}
	switch p.Degraded {
	case PolicyFail, PolicyDegrade:
	default:
		return fmt.Errorf("%w: unknown degraded policy %q", domain.ErrInvalidRequest, p.Degraded)
	}
	return nil
}

// PoolSize returns the ANN candidate pool for a requested topK: a
// multiple of topK with a floor, leaving room for filtering and
// diversification to discard candidates.
func (p Profile) PoolSize(topK int) int {
	pool := topK * p.PoolMultiplier
	if pool < MinPoolSize {
		pool = MinPoolSize
	}
	return pool
}

package visearch

import (
	"fmt"
	"time"

	domcat "github.com/kailas-cloud/visearch/internal/domain/catalog"
	domprof "github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/rule"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	indexrepo "github.com/kailas-cloud/visearch/internal/repository/index"
)

// Entry is one embedding to index: a whole product image, or a detected
// region crop when Region is set.
type Entry struct {
	ImageID          string
	ProductID        string
	VariantID        string
	Region           bool
	RegionConfidence float64
	Vector           []float32
}

// Attributes is a product's catalog attribute set, joined onto search
// candidates for filtering and business rules.
type Attributes struct {
	ProductID string
	Price     float64
	Brand     string
	Category  string
	Tags      []string
	InStock   bool
	MarginPct float64
	CreatedAt time.Time
}

// RuleEffect is how a business rule mutates the composite score.
type RuleEffect string

// Supported rule effects.
const (
	EffectMultiply RuleEffect = RuleEffect(rule.Multiply)
	EffectAdd      RuleEffect = RuleEffect(rule.Add)
)

// Rule is a tenant-declared boost or penalty. Condition is a CEL
// expression over product attributes (price, brand, category, tags,
// in_stock, margin_pct, age_days, prior, level).
type Rule struct {
	Name      string
	Condition string
	Effect    RuleEffect
	Amount    float64
}

// DegradedPolicy decides what a search does when a partition fails.
type DegradedPolicy string

// Supported degraded-partition policies.
const (
	PolicyFail    DegradedPolicy = DegradedPolicy(domprof.PolicyFail)
	PolicyDegrade DegradedPolicy = DegradedPolicy(domprof.PolicyDegrade)
)

// Profile is a tenant's ranking configuration. Zero-valued fields keep
// the engine defaults.
type Profile struct {
	OrgID          string
	ImageWeight    float64
	TextWeight     float64
	ExactWeight    float64
	RegionWeight   float64
	PriorWeight    float64
	LevelPenalty   float64
	Lambda         float64
	PoolMultiplier int
	Degraded       DegradedPolicy
	Rules          []Rule
}

func entryToInternal(e Entry) indexrepo.Entry {
	level := candidate.LevelImage
	if e.Region {
		level = candidate.LevelRegion
	}
	return indexrepo.Entry{
		ImageID:          e.ImageID,
		ProductID:        e.ProductID,
		VariantID:        e.VariantID,
		Level:            level,
		RegionConfidence: e.RegionConfidence,
		Vector:           e.Vector,
	}
}

func attributesToInternal(a Attributes) domcat.Attributes {
	return domcat.Attributes{
		ProductID: a.ProductID,
		Price:     a.Price,
		Brand:     a.Brand,
		Category:  a.Category,
		Tags:      a.Tags,
		InStock:   a.InStock,
		MarginPct: a.MarginPct,
		CreatedAt: a.CreatedAt,
	}
}

// profileToInternal maps a public profile onto the engine defaults:
// zero-valued weights keep their default, so callers only set what they
// want to change.
func profileToInternal(p Profile) (domprof.Profile, error) {
	out := domprof.Default(p.OrgID)

	if p.ImageWeight > 0 {
		out.ImageWeight = p.ImageWeight
	}
	if p.TextWeight > 0 {
		out.TextWeight = p.TextWeight
	}
	if p.ExactWeight > 0 {
		out.Rerank.Exact = p.ExactWeight
	}
	if p.RegionWeight > 0 {
		out.Rerank.Region = p.RegionWeight
	}
	if p.PriorWeight > 0 {
		out.Rerank.Prior = p.PriorWeight
	}
	if p.LevelPenalty > 0 {
		out.Rerank.LevelPenalty = p.LevelPenalty
	}
	if p.Lambda > 0 {
		out.Lambda = p.Lambda
	}
	if p.PoolMultiplier > 0 {
		out.PoolMultiplier = p.PoolMultiplier
	}
	if p.Degraded != "" {
		out.Degraded = domprof.DegradedPolicy(p.Degraded)
	}

	for _, r := range p.Rules {
		dr, err := rule.New(r.Name, r.Condition, rule.Effect(r.Effect), r.Amount)
		if err != nil {
			return domprof.Profile{}, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		out.Rules = append(out.Rules, dr)
	}

	return out, nil
}

package search

import (
	"sort"
	"time"

	"github.com/kailas-cloud/visearch/internal/domain/rule"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

// applyRules runs the tenant's compiled business rules over the ranked
// list in declared order, mutating only the composite score, then clamps
// to [0,1] and re-sorts with the usual tie-break. A rule whose program
// errors on a candidate does not fire; misfires are counted for the
// caller to log. Pure and deterministic: identical input and rule set
// always produce identical output order.
func applyRules(cands []candidate.Candidate, rules []rule.Compiled, now time.Time) (misfires int) {
	if len(rules) == 0 || len(cands) == 0 {
		return 0
	}

	for i := range cands {
		c := &cands[i]
		activation := buildActivation(c, now)

		for _, r := range rules {
			matched, err := r.Matches(activation)
			if err != nil {
				misfires++
				continue
			}
			if !matched {
				continue
			}
			c.CompositeScore = r.Apply(c.CompositeScore)
			c.AddReason(candidate.ReasonBoostPrefix + r.Name())
		}

		c.CompositeScore = clamp01(c.CompositeScore)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return candidate.Less(&cands[i], &cands[j], composite)
	})
	return misfires
}

// buildActivation exposes candidate state to CEL rule conditions.
func buildActivation(c *candidate.Candidate, now time.Time) map[string]any {
	activation := map[string]any{
		"price":      0.0,
		"brand":      "",
		"category":   "",
		"tags":       []string{},
		"in_stock":   false,
		"margin_pct": 0.0,
		"age_days":   0,
		"level":      string(c.Level),
		"prior":      c.Prior,
	}

	if a := c.Attributes; a != nil {
		activation["price"] = a.Price
		activation["brand"] = a.Brand
		activation["category"] = a.Category
		if len(a.Tags) > 0 {
			activation["tags"] = a.Tags
		}
		activation["in_stock"] = a.InStock
		activation["margin_pct"] = a.MarginPct
		activation["age_days"] = a.AgeDays(now)
	}

	return activation
}

package search

import (
	"github.com/kailas-cloud/visearch/internal/domain/catalog"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
)

// filterOutcome reports what the attribute gate did, for logs and metrics.
type filterOutcome struct {
	kept         []candidate.Candidate
	attrsMissing int
	filtered     int
}

// applyFilters gates candidates on catalog attributes. A candidate whose
// attributes are absent is dropped, never assumed to pass. Survivors keep
// their relative order and carry their attributes forward for the rule
// stage.
func applyFilters(
	cands []candidate.Candidate,
	attrs map[string]catalog.Attributes,
	f filter.Filters,
) filterOutcome {
	out := filterOutcome{kept: make([]candidate.Candidate, 0, len(cands))}
	applied := f.Applied()

	for i := range cands {
		c := cands[i]

		a, ok := attrs[c.ProductID]
		if !ok {
			out.attrsMissing++
			continue
		}

		if !passes(a, f) {
			out.filtered++
			continue
		}

		c.Attributes = &a
		for _, name := range applied {
			c.AddReason(candidate.ReasonFilteredPrefix + name)
		}
		out.kept = append(out.kept, c)
	}

	return out
}

func passes(a catalog.Attributes, f filter.Filters) bool {
	if min := f.PriceMin(); min != nil && a.Price < *min {
		return false
	}
	if max := f.PriceMax(); max != nil && a.Price > *max {
		return false
	}
	if brands := f.Brands(); len(brands) > 0 && !contains(brands, a.Brand) {
		return false
	}
	if cats := f.Categories(); len(cats) > 0 && !contains(cats, a.Category) {
		return false
	}
	for _, tag := range f.Tags() {
		if !a.HasTag(tag) {
			return false
		}
	}
	if f.InStockOnly() && !a.InStock {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

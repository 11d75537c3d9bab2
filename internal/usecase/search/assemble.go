package search

import (
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/search/result"
)

// assemble slices the final ranked list into the response page. It never
// re-sorts. total is the distinct-product survivor count before
// pagination, not the page size; since ranked holds at most one entry
// per product, hasNext is false exactly when the page reaches the last
// pageable product.
func assemble(ranked []candidate.Candidate, total, offset, limit int) ([]result.Result, bool, bool) {
	hasPrev := offset > 0

	if limit <= 0 || offset >= len(ranked) {
		return []result.Result{}, offset < total && limit > 0, hasPrev
	}

	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	page := ranked[offset:end]
	results := make([]result.Result, len(page))
	for i := range page {
		c := &page[i]
		results[i] = result.Result{
			ProductID:   c.ProductID,
			VariantID:   c.VariantID,
			ImageID:     c.ImageID,
			Score:       c.CompositeScore,
			Rank:        offset + i + 1,
			ReasonCodes: c.Reasons(),
		}
	}

	return results, end < total, hasPrev
}

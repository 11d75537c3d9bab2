// Package filter models the structured attribute filters of a search
// request: price range, brand/category/tag membership, and stock gating.
package filter

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
)

// MaxSetMembers bounds brand/category/tag membership lists.
const MaxSetMembers = 64

// Filters is a validated, immutable set of hard attribute filters.
type Filters struct {
	priceMin    *float64
	priceMax    *float64
	brands      []string
	categories  []string
	tags        []string
	inStockOnly bool
}

// New validates and creates a filter set. An unsatisfiable combination
// (priceMin > priceMax, negative prices, empty set members) is rejected
// with ErrInvalidFilter before any index call is made.
func New(
	priceMin, priceMax *float64,
	brands, categories, tags []string,
	inStockOnly bool,
) (Filters, error) {
	if priceMin != nil && *priceMin < 0 {
		return Filters{}, fmt.Errorf("%w: priceMin must be non-negative", domain.ErrInvalidFilter)
	}
	if priceMax != nil && *priceMax < 0 {
		return Filters{}, fmt.Errorf("%w: priceMax must be non-negative", domain.ErrInvalidFilter)
	}
	if priceMin != nil && priceMax != nil && *priceMin > *priceMax {
		return Filters{}, fmt.Errorf("%w: priceMin %f exceeds priceMax %f",
			domain.ErrInvalidFilter, *priceMin, *priceMax)
	}
	for _, group := range []struct {
		name    string
		members []string
	}{
		{"brand", brands},
		{"category", categories},
		{"tags", tags},
	} {
		if len(group.members) > MaxSetMembers {
			return Filters{}, fmt.Errorf("%w: too many %s values (max %d)",
				domain.ErrInvalidFilter, group.name, MaxSetMembers)
		}
		for _, m := range group.members {
			if m == "" {
				return Filters{}, fmt.Errorf("%w: empty %s value", domain.ErrInvalidFilter, group.name)
			}
		}
	}
	return Filters{
		priceMin:    priceMin,
		priceMax:    priceMax,
		brands:      brands,
		categories:  categories,
		tags:        tags,
		inStockOnly: inStockOnly,
	}, nil
}

// PriceMin returns the minimum price bound, nil when unset.
func (f Filters) PriceMin() *float64 { return f.priceMin }

// PriceMax returns the maximum price bound, nil when unset.
func (f Filters) PriceMax() *float64 { return f.priceMax }

// Brands returns the allowed brand set, empty when unrestricted.
func (f Filters) Brands() []string { return f.brands }

// Categories returns the allowed category set, empty when unrestricted.
func (f Filters) Categories() []string { return f.categories }

// Tags returns the required tag set, empty when unrestricted.
func (f Filters) Tags() []string { return f.tags }

// InStockOnly reports whether out-of-stock products are excluded.
func (f Filters) InStockOnly() bool { return f.inStockOnly }

// IsEmpty reports whether no filter is active.
func (f Filters) IsEmpty() bool {
	return f.priceMin == nil && f.priceMax == nil &&
		len(f.brands) == 0 && len(f.categories) == 0 && len(f.tags) == 0 &&
		!f.inStockOnly
}

// Applied lists the active filter names for response metadata and
// reason codes.
func (f Filters) Applied() []string {
	var names []string
	if f.priceMin != nil || f.priceMax != nil {
		names = append(names, "price")
	}
	if len(f.brands) > 0 {
		names = append(names, "brand")
	}
	if len(f.categories) > 0 {
		names = append(names, "category")
	}
	if len(f.tags) > 0 {
		names = append(names, "tags")
	}
	if f.inStockOnly {
		names = append(names, "in_stock")
	}
	return names
}

// Package catalog holds the product attribute view consumed by the
// filtering and business-rule stages. Attributes are owned by the catalog
// service; this engine only reads them.
package catalog

import "time"

// Attributes is the per-product attribute set joined onto candidates.
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

// AgeDays returns the number of whole days since the product was created,
// relative to now. Zero when CreatedAt is unset.
func (a Attributes) AgeDays(now time.Time) int {
	if a.CreatedAt.IsZero() {
		return 0
	}
	d := now.Sub(a.CreatedAt)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// HasTag reports whether the product carries the given tag.
func (a Attributes) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

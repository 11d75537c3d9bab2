package catalog

import (
	"strconv"
	"strings"
	"time"

	domcat "github.com/kailas-cloud/visearch/internal/domain/catalog"
)

// Hash field names of a catalog entry.
const (
	fieldPrice     = "price"
	fieldBrand     = "brand"
	fieldCategory  = "category"
	fieldTags      = "tags"
	fieldInStock   = "in_stock"
	fieldMarginPct = "margin_pct"
	fieldCreatedAt = "created_at"
)

// parseAttributes converts a flat catalog hash into domain attributes.
// Unparseable numeric fields read as zero values rather than failing the
// whole batch.
func parseAttributes(productID string, m map[string]string) domcat.Attributes {
	a := domcat.Attributes{
		ProductID: productID,
		Brand:     m[fieldBrand],
		Category:  m[fieldCategory],
	}

	if v, err := strconv.ParseFloat(m[fieldPrice], 64); err == nil {
		a.Price = v
	}
	if v, err := strconv.ParseFloat(m[fieldMarginPct], 64); err == nil {
		a.MarginPct = v
	}
	if tags := m[fieldTags]; tags != "" {
		a.Tags = strings.Split(tags, ",")
	}
	a.InStock = m[fieldInStock] == "1" || m[fieldInStock] == "true"

	if raw := m[fieldCreatedAt]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			a.CreatedAt = t
		} else if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
			a.CreatedAt = time.Unix(secs, 0).UTC()
		}
	}

	return a
}

// buildHashFields flattens attributes for HSET.
func buildHashFields(a domcat.Attributes) map[string]string {
	m := map[string]string{
		fieldPrice:     strconv.FormatFloat(a.Price, 'f', -1, 64),
		fieldBrand:     a.Brand,
		fieldCategory:  a.Category,
		fieldMarginPct: strconv.FormatFloat(a.MarginPct, 'f', -1, 64),
		fieldInStock:   "0",
	}
	if a.InStock {
		m[fieldInStock] = "1"
	}
	if len(a.Tags) > 0 {
		m[fieldTags] = strings.Join(a.Tags, ",")
	}
	if !a.CreatedAt.IsZero() {
		m[fieldCreatedAt] = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	return m
}

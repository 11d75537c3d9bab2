package search

import (
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain/catalog"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
)

func mustFilters(
	t *testing.T,
	priceMin, priceMax *float64,
	brands, categories, tags []string,
	inStockOnly bool,
) filter.Filters {
	t.Helper()
	f, err := filter.New(priceMin, priceMax, brands, categories, tags, inStockOnly)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return f
}

func TestApplyFilters_PriceMaxExcludesHighSimilarity(t *testing.T) {
	cands := []candidate.Candidate{
		cand("expensive", 0.99, []float32{1, 0}),
		cand("cheap", 0.5, []float32{0, 1}),
	}
	attrs := map[string]catalog.Attributes{
		"expensive": {ProductID: "expensive", Price: 250},
		"cheap":     {ProductID: "cheap", Price: 50},
	}
	f := mustFilters(t, nil, ptrFloat(200), nil, nil, nil, false)

	out := applyFilters(cands, attrs, f)
	if len(out.kept) != 1 || out.kept[0].ProductID != "cheap" {
		t.Fatalf("expected only cheap to survive, got %v", out.kept)
	}
	if out.filtered != 1 {
		t.Errorf("expected 1 filtered, got %d", out.filtered)
	}
}

func TestApplyFilters_MissingAttrsDropped(t *testing.T) {
	cands := []candidate.Candidate{
		cand("known", 0.9, nil),
		cand("unknown", 0.8, nil),
	}
	attrs := map[string]catalog.Attributes{
		"known": {ProductID: "known", Price: 10},
	}

	out := applyFilters(cands, attrs, filter.Filters{})
	if len(out.kept) != 1 || out.kept[0].ProductID != "known" {
		t.Fatalf("expected only known to survive, got %v", out.kept)
	}
	if out.attrsMissing != 1 {
		t.Errorf("expected 1 attrs-missing drop, got %d", out.attrsMissing)
	}
}

func TestApplyFilters_PreservesOrder(t *testing.T) {
	cands := []candidate.Candidate{
		cand("a", 0.9, nil),
		cand("b", 0.8, nil),
		cand("c", 0.7, nil),
	}
	attrs := attrsFor("a", "b", "c")

	out := applyFilters(cands, attrs, filter.Filters{})
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if out.kept[i].ProductID != w {
			t.Errorf("position %d: expected %s, got %s", i, w, out.kept[i].ProductID)
		}
	}
}

func TestApplyFilters_BrandCategoryTagsStock(t *testing.T) {
	attrs := map[string]catalog.Attributes{
		"match": {
			ProductID: "match", Price: 50, Brand: "nord", Category: "shoes",
			Tags: []string{"sale", "new"}, InStock: true,
		},
		"wrong-brand": {ProductID: "wrong-brand", Price: 50, Brand: "other", Category: "shoes",
			Tags: []string{"sale"}, InStock: true},
		"no-tag": {ProductID: "no-tag", Price: 50, Brand: "nord", Category: "shoes", InStock: true},
		"oos":    {ProductID: "oos", Price: 50, Brand: "nord", Category: "shoes", Tags: []string{"sale"}},
	}
	cands := []candidate.Candidate{
		cand("match", 0.9, nil),
		cand("wrong-brand", 0.9, nil),
		cand("no-tag", 0.9, nil),
		cand("oos", 0.9, nil),
	}
	f := mustFilters(t, nil, nil, []string{"nord"}, []string{"shoes"}, []string{"sale"}, true)

	out := applyFilters(cands, attrs, f)
	if len(out.kept) != 1 || out.kept[0].ProductID != "match" {
		t.Fatalf("expected only match to survive, got %v", out.kept)
	}
	if out.kept[0].Attributes == nil || out.kept[0].Attributes.Brand != "nord" {
		t.Error("expected attributes attached to survivor")
	}
}

func TestApplyFilters_AppliedFilterReasons(t *testing.T) {
	cands := []candidate.Candidate{cand("a", 0.9, nil)}
	attrs := map[string]catalog.Attributes{"a": {ProductID: "a", Price: 50, InStock: true}}
	f := mustFilters(t, nil, ptrFloat(100), nil, nil, nil, true)

	out := applyFilters(cands, attrs, f)
	reasons := out.kept[0].Reasons()
	wantPrice, wantStock := false, false
	for _, r := range reasons {
		if r == "filter:price" {
			wantPrice = true
		}
		if r == "filter:in_stock" {
			wantStock = true
		}
	}
	if !wantPrice || !wantStock {
		t.Errorf("expected passed-filter reasons, got %v", reasons)
	}
}

func TestApplyFilters_EmptyResultIsValid(t *testing.T) {
	cands := []candidate.Candidate{cand("a", 0.9, nil)}
	f := mustFilters(t, nil, nil, nil, nil, nil, true)
	attrs := map[string]catalog.Attributes{"a": {ProductID: "a", Price: 10, InStock: false}}

	out := applyFilters(cands, attrs, f)
	if len(out.kept) != 0 {
		t.Errorf("expected empty survivors, got %v", out.kept)
	}
}

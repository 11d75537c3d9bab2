package visearch

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/visearch/internal/domain"
	domprof "github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

func TestEntryToInternal_ImageLevel(t *testing.T) {
	e := entryToInternal(Entry{
		ImageID:   "img-1",
		ProductID: "prod-1",
		VariantID: "var-1",
		Vector:    []float32{1, 0},
	})

	if e.Level != candidate.LevelImage {
		t.Errorf("expected image level, got %s", e.Level)
	}
	if e.ImageID != "img-1" || e.ProductID != "prod-1" || e.VariantID != "var-1" {
		t.Errorf("unexpected identity: %+v", e)
	}
}

func TestEntryToInternal_RegionLevel(t *testing.T) {
	e := entryToInternal(Entry{
		ImageID:          "img-1-crop-0",
		ProductID:        "prod-1",
		Region:           true,
		RegionConfidence: 0.9,
		Vector:           []float32{1, 0},
	})

	if e.Level != candidate.LevelRegion || e.RegionConfidence != 0.9 {
		t.Errorf("unexpected region mapping: %+v", e)
	}
}

func TestAttributesToInternal(t *testing.T) {
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	a := attributesToInternal(Attributes{
		ProductID: "prod-1",
		Price:     49.90,
		Brand:     "acme",
		Category:  "shoes",
		Tags:      []string{"sale", "new"},
		InStock:   true,
		MarginPct: 0.35,
		CreatedAt: created,
	})

	if a.ProductID != "prod-1" || a.Price != 49.90 || a.Brand != "acme" {
		t.Errorf("unexpected attributes: %+v", a)
	}
	if len(a.Tags) != 2 || !a.InStock || a.MarginPct != 0.35 {
		t.Errorf("unexpected attributes: %+v", a)
	}
	if !a.CreatedAt.Equal(created) {
		t.Errorf("unexpected created at: %v", a.CreatedAt)
	}
}

func TestProfileToInternal_DefaultsKept(t *testing.T) {
	p, err := profileToInternal(Profile{OrgID: "acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domprof.Default("acme")
	if p.ImageWeight != want.ImageWeight || p.Rerank.Exact != want.Rerank.Exact {
		t.Errorf("expected engine defaults, got %+v", p)
	}
	if p.Degraded != domprof.PolicyDegrade {
		t.Errorf("expected degrade policy default, got %s", p.Degraded)
	}
}

func TestProfileToInternal_Overrides(t *testing.T) {
	p, err := profileToInternal(Profile{
		OrgID:       "acme",
		ImageWeight: 0.8,
		TextWeight:  0.2,
		ExactWeight: 0.7,
		Lambda:      0.5,
		Degraded:    PolicyFail,
		Rules: []Rule{
			{Name: "instock", Condition: "in_stock", Effect: EffectMultiply, Amount: 1.1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ImageWeight != 0.8 || p.TextWeight != 0.2 {
		t.Errorf("unexpected fusion weights: %+v", p)
	}
	if p.Rerank.Exact != 0.7 || p.Lambda != 0.5 {
		t.Errorf("unexpected rerank overrides: %+v", p)
	}
	if p.Degraded != domprof.PolicyFail {
		t.Errorf("expected fail policy, got %s", p.Degraded)
	}
	if len(p.Rules) != 1 || p.Rules[0].Name() != "instock" {
		t.Errorf("unexpected rules: %v", p.Rules)
	}
	// Untouched weights keep their defaults.
	if p.Rerank.Prior != domprof.DefaultPriorWeight {
		t.Errorf("expected default prior weight, got %f", p.Rerank.Prior)
	}
}

func TestProfileToInternal_BadRule(t *testing.T) {
	_, err := profileToInternal(Profile{
		OrgID: "acme",
		Rules: []Rule{
			{Name: "", Condition: "in_stock", Effect: EffectMultiply, Amount: 1.1},
		},
	})
	if !errors.Is(err, domain.ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule, got %v", err)
	}
}

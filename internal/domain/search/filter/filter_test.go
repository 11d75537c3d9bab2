package filter

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestNew_Valid(t *testing.T) {
	f, err := New(ptr(10), ptr(200), []string{"acme"}, []string{"shoes"}, []string{"summer"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.IsEmpty() {
		t.Error("filters should not be empty")
	}
	if !f.InStockOnly() {
		t.Error("expected inStockOnly")
	}
}

func TestNew_PriceMinAbovePriceMax(t *testing.T) {
	_, err := New(ptr(300), ptr(200), nil, nil, nil, false)
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestNew_NegativePrice(t *testing.T) {
	_, err := New(ptr(-1), nil, nil, nil, nil, false)
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestNew_EmptyBrandValue(t *testing.T) {
	_, err := New(nil, nil, []string{"acme", ""}, nil, nil, false)
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestNew_TooManyMembers(t *testing.T) {
	members := make([]string, MaxSetMembers+1)
	for i := range members {
		members[i] = "b"
	}
	_, err := New(nil, nil, members, nil, nil, false)
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestIsEmpty(t *testing.T) {
	f, err := New(nil, nil, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsEmpty() {
		t.Error("expected empty filters")
	}
}

func TestApplied(t *testing.T) {
	f, err := New(nil, ptr(100), []string{"acme"}, nil, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	applied := f.Applied()
	want := map[string]bool{"price": true, "brand": true, "in_stock": true}
	if len(applied) != len(want) {
		t.Fatalf("applied = %v, want keys %v", applied, want)
	}
	for _, name := range applied {
		if !want[name] {
			t.Errorf("unexpected applied filter %q", name)
		}
	}
}

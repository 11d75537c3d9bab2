package request

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
)

func intPtr(v int) *int         { return &v }
func fPtr(v float64) *float64   { return &v }
func img() []float32            { return []float32{1, 0, 0} }
func noFilters() filter.Filters { f, _ := filter.New(nil, nil, nil, nil, nil, false); return f }

func TestNew_Defaults(t *testing.T) {
	r, err := New("org-1", img(), nil, "", nil, noFilters(), nil, 0, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("TopK = %d, want %d", r.TopK(), DefaultTopK)
	}
}

func TestNew_ExplicitZeroTopK(t *testing.T) {
	r, err := New("org-1", img(), nil, "", nil, noFilters(), intPtr(0), 0, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != 0 {
		t.Errorf("explicit topK=0 must be preserved, got %d", r.TopK())
	}
}

func TestNew_TopKClamped(t *testing.T) {
	r, err := New("org-1", img(), nil, "", nil, noFilters(), intPtr(500), 0, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != MaxTopK {
		t.Errorf("TopK = %d, want clamp to %d", r.TopK(), MaxTopK)
	}
}

func TestNew_MissingOrg(t *testing.T) {
	_, err := New("", img(), nil, "", nil, noFilters(), nil, 0, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_MissingImage(t *testing.T) {
	_, err := New("org-1", nil, nil, "", nil, noFilters(), nil, 0, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_TextVectorAndRawTextConflict(t *testing.T) {
	_, err := New("org-1", img(), []float32{1}, "red dress", nil, noFilters(), nil, 0, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_LambdaOutOfRange(t *testing.T) {
	_, err := New("org-1", img(), nil, "", nil, noFilters(), nil, 0, fPtr(1.5), nil, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_NegativeOffset(t *testing.T) {
	_, err := New("org-1", img(), nil, "", nil, noFilters(), nil, -1, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_PartialFusionWeights(t *testing.T) {
	_, err := New("org-1", img(), nil, "", nil, noFilters(), nil, 0, nil, fPtr(0.8), nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

package profile

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
)

func TestDefault_IsValid(t *testing.T) {
	p := Default("org-1")
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile should validate: %v", err)
	}
	if p.ImageWeight != DefaultImageWeight || p.TextWeight != DefaultTextWeight {
		t.Errorf("unexpected fusion weights: %f/%f", p.ImageWeight, p.TextWeight)
	}
}

func TestValidate_ExactWeightFloor(t *testing.T) {
	p := Default("org-1")
	p.Rerank.Exact = 0.5
	if err := p.Validate(); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for exact weight below floor, got %v", err)
	}
}

func TestValidate_LambdaRange(t *testing.T) {
	p := Default("org-1")
	p.Lambda = 1.2
	if err := p.Validate(); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for lambda > 1, got %v", err)
	}
}

func TestValidate_DegradedPolicy(t *testing.T) {
	p := Default("org-1")
	p.Degraded = "panic"
	if err := p.Validate(); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown policy, got %v", err)
	}
}

func TestPoolSize(t *testing.T) {
	p := Default("org-1")

	if got := p.PoolSize(20); got != 100 {
		t.Errorf("PoolSize(20) = %d, want 100", got)
	}
	// Small topK hits the floor.
	if got := p.PoolSize(2); got != MinPoolSize {
		t.Errorf("PoolSize(2) = %d, want %d", got, MinPoolSize)
	}
}

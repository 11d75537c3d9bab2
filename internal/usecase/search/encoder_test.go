package search

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
)

func TestFuseQuery_ImageOnlyNormalized(t *testing.T) {
	out, err := fuseQuery([]float32{3, 4}, nil, 2, 0.7, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vector.IsNormalized(out) {
		t.Errorf("expected unit vector, norm=%f", vector.Norm(out))
	}
	// direction preserved: 3-4-5 triangle
	if math.Abs(float64(out[0])-0.6) > 1e-6 || math.Abs(float64(out[1])-0.8) > 1e-6 {
		t.Errorf("unexpected direction: %v", out)
	}
}

func TestFuseQuery_WeightedFusion(t *testing.T) {
	image := []float32{1, 0}
	text := []float32{0, 1}

	out, err := fuseQuery(image, text, 2, 0.7, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vector.IsNormalized(out) {
		t.Errorf("expected unit vector, norm=%f", vector.Norm(out))
	}
	// 0.7/0.3 blend leans toward the image axis
	if out[0] <= out[1] {
		t.Errorf("expected image axis to dominate: %v", out)
	}
}

func TestFuseQuery_ImageDimensionMismatch(t *testing.T) {
	_, err := fuseQuery([]float32{1, 0, 0}, nil, 2, 0.7, 0.3)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFuseQuery_TextDimensionMismatch(t *testing.T) {
	_, err := fuseQuery([]float32{1, 0}, []float32{1, 0, 0}, 2, 0.7, 0.3)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFuseQuery_NoConfiguredDimension(t *testing.T) {
	out, err := fuseQuery([]float32{1, 0, 0, 0}, nil, 0, 0.7, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Errorf("unexpected length: %d", len(out))
	}
}

package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
)

func TestNormalize_UnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})
	if !IsNormalized(v) {
		t.Fatalf("expected unit length, got norm %f", Norm(v))
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("unexpected components: %v", v)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	if Norm(v) != 0 {
		t.Errorf("zero vector should stay zero, got %v", v)
	}
}

func TestCosine_Identical(t *testing.T) {
	v := Normalize([]float32{1, 2, 3})
	sim, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("expected similarity 1.0, got %f", sim)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim) > 1e-6 {
		t.Errorf("expected similarity 0, got %f", sim)
	}
}

func TestCosine_Opposite(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim+1.0) > 1e-6 {
		t.Errorf("expected similarity -1, got %f", sim)
	}
}

func TestCosine_NormalizesUnnormalizedInput(t *testing.T) {
	sim, err := Cosine([]float32{2, 0}, []float32{5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("expected similarity 1.0 after normalization, got %f", sim)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 0}, []float32{1, 0, 0})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFuse_WeightedSum(t *testing.T) {
	out, err := Fuse([]float32{1, 0}, []float32{0, 1}, 0.7, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsNormalized(out) {
		t.Fatalf("fused vector not normalized: norm=%f", Norm(out))
	}
	// Direction must favor the image component 7:3.
	ratio := float64(out[0]) / float64(out[1])
	if math.Abs(ratio-7.0/3.0) > 1e-4 {
		t.Errorf("expected component ratio 7/3, got %f", ratio)
	}
}

func TestFuse_DimensionMismatch(t *testing.T) {
	_, err := Fuse([]float32{1}, []float32{1, 0}, 0.5, 0.5)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

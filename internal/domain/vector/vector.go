// Package vector holds the embedding vector math shared by the ranking
// pipeline: normalization, cosine similarity, and weighted fusion.
package vector

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/visearch/internal/domain"
)

// NormTolerance is the allowed deviation from unit length before a vector
// is considered unnormalized.
const NormTolerance = 1e-3

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// IsNormalized reports whether v is unit length within NormTolerance.
func IsNormalized(v []float32) bool {
	return math.Abs(Norm(v)-1.0) <= NormTolerance
}

// Normalize returns a unit-length copy of v. A zero vector is returned
// unchanged; callers must treat it as unusable for similarity.
func Normalize(v []float32) []float32 {
	n := Norm(v)
	out := make([]float32, len(v))
	if n == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

// Dot returns the dot product of two equal-dimension vectors.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot %d vs %d: %w", len(a), len(b), domain.ErrDimensionMismatch)
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}

// Cosine returns the cosine similarity of two vectors. Both inputs are
// expected to be unit-normalized; unnormalized inputs are normalized on
// the fly so a stale index entry cannot skew the ranking.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine %d vs %d: %w", len(a), len(b), domain.ErrDimensionMismatch)
	}
	if !IsNormalized(a) {
		a = Normalize(a)
	}
	if !IsNormalized(b) {
		b = Normalize(b)
	}
	return Dot(a, b)
}

// Fuse combines two vectors as wa*a + wb*b and renormalizes the result
// to unit length.
func Fuse(a, b []float32, wa, wb float64) ([]float32, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("fuse %d vs %d: %w", len(a), len(b), domain.ErrDimensionMismatch)
	}
	out := make([]float32, len(a))
	for i := range a {
		out[i] = float32(wa*float64(a[i]) + wb*float64(b[i]))
	}
	return Normalize(out), nil
}

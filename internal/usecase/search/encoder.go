package search

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
)

// fuseQuery builds the single normalized query vector: the image vector
// alone, or a weighted image+text sum renormalized to unit length. dim is
// the configured index dimension; every input is checked against it
// before any index call is made.
func fuseQuery(image, text []float32, dim int, imageWeight, textWeight float64) ([]float32, error) {
	if dim > 0 && len(image) != dim {
		return nil, fmt.Errorf("query image %d vs index %d: %w",
			len(image), dim, domain.ErrDimensionMismatch)
	}

	if len(text) == 0 {
		return vector.Normalize(image), nil
	}

	if dim > 0 && len(text) != dim {
		return nil, fmt.Errorf("query text %d vs index %d: %w",
			len(text), dim, domain.ErrDimensionMismatch)
	}

	fused, err := vector.Fuse(image, text, imageWeight, textWeight)
	if err != nil {
		return nil, fmt.Errorf("fuse query vectors: %w", err)
	}
	return fused, nil
}

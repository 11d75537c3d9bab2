package search

import (
	"context"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/catalog"
	"github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

// IndexSearcher is the retrieval contract: concurrent partition fan-out
// returning the merged candidate pool plus the partitions that failed in
// degraded mode. Stats reports the tenant's indexed vector count, used
// to tell an unprovisioned index apart from a query with no matches.
type IndexSearcher interface {
	Search(
		ctx context.Context, orgID string, vector []float32,
		categories []string, pool int, failFast bool,
	) ([]candidate.Candidate, []string, error)
	Stats(ctx context.Context, orgID string) (int, error)
}

// CatalogReader batch-fetches product attributes. Products without a
// catalog entry are absent from the returned map.
type CatalogReader interface {
	Fetch(ctx context.Context, orgID string, productIDs []string) (map[string]catalog.Attributes, error)
}

// PriorReader returns the smoothed engagement prior per product, in [0,1].
type PriorReader interface {
	Priors(ctx context.Context, orgID string, productIDs []string) (map[string]float64, error)
}

// ProfileReader loads the tenant ranking profile.
type ProfileReader interface {
	Get(ctx context.Context, orgID string) (profile.Profile, error)
}

// Embedder vectorizes raw query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

package search

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/catalog"
	"github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
	"github.com/kailas-cloud/visearch/internal/domain/search/request"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
)

// --- mocks for the pipeline contracts ---

type mockIndex struct {
	searchFn func(ctx context.Context, orgID string, vec []float32,
		categories []string, pool int, failFast bool) ([]candidate.Candidate, []string, error)
	statsFn func(ctx context.Context, orgID string) (int, error)
}

func (m *mockIndex) Search(
	ctx context.Context, orgID string, vec []float32,
	categories []string, pool int, failFast bool,
) ([]candidate.Candidate, []string, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, orgID, vec, categories, pool, failFast)
	}
	return nil, nil, nil
}

func (m *mockIndex) Stats(ctx context.Context, orgID string) (int, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, orgID)
	}
	return 0, nil
}

type mockCatalog struct {
	fetchFn func(ctx context.Context, orgID string, ids []string) (map[string]catalog.Attributes, error)
}

func (m *mockCatalog) Fetch(
	ctx context.Context, orgID string, ids []string,
) (map[string]catalog.Attributes, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, orgID, ids)
	}
	// Default: every product exists, in stock.
	attrs := make(map[string]catalog.Attributes, len(ids))
	for _, id := range ids {
		attrs[id] = catalog.Attributes{ProductID: id, Price: 10, InStock: true}
	}
	return attrs, nil
}

type mockPriors struct {
	priorsFn func(ctx context.Context, orgID string, ids []string) (map[string]float64, error)
}

func (m *mockPriors) Priors(
	ctx context.Context, orgID string, ids []string,
) (map[string]float64, error) {
	if m.priorsFn != nil {
		return m.priorsFn(ctx, orgID, ids)
	}
	return map[string]float64{}, nil
}

type mockProfiles struct {
	getFn func(ctx context.Context, orgID string) (profile.Profile, error)
}

func (m *mockProfiles) Get(ctx context.Context, orgID string) (profile.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID)
	}
	return profile.Profile{}, domain.ErrProfileNotFound
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{}, nil
}

type testMocks struct {
	index    *mockIndex
	catalog  *mockCatalog
	priors   *mockPriors
	profiles *mockProfiles
	embed    *mockEmbedder
}

func newTestService(t *testing.T, cfg Config) (*Service, *testMocks) {
	t.Helper()
	m := &testMocks{
		index:    &mockIndex{},
		catalog:  &mockCatalog{},
		priors:   &mockPriors{},
		profiles: &mockProfiles{},
		embed:    &mockEmbedder{},
	}
	if cfg.Deadline == 0 {
		cfg.Deadline = 5 * time.Second
	}
	svc := New(m.index, m.catalog, m.priors, m.profiles, m.embed, cfg)
	return svc, m
}

// --- builders ---

func mustRequest(t *testing.T, image []float32, opts ...func(*reqOpts)) *request.Request {
	t.Helper()
	o := &reqOpts{}
	for _, opt := range opts {
		opt(o)
	}
	req, err := request.New(
		"acme", image, o.text, o.textQuery, nil, o.filters,
		o.topK, o.offset, o.lambda, nil, nil,
	)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

type reqOpts struct {
	text      []float32
	textQuery string
	filters   filter.Filters
	topK      *int
	offset    int
	lambda    *float64
}

func withTopK(k int) func(*reqOpts)         { return func(o *reqOpts) { o.topK = &k } }
func withOffset(n int) func(*reqOpts)       { return func(o *reqOpts) { o.offset = n } }
func withLambda(l float64) func(*reqOpts)   { return func(o *reqOpts) { o.lambda = &l } }
func withTextQuery(q string) func(*reqOpts) { return func(o *reqOpts) { o.textQuery = q } }

func withFilters(t *testing.T, priceMax *float64, inStockOnly bool) func(*reqOpts) {
	t.Helper()
	f, err := filter.New(nil, priceMax, nil, nil, nil, inStockOnly)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return func(o *reqOpts) { o.filters = f }
}

// cand builds an image-level candidate with a normalized vector.
func cand(productID string, annScore float64, vec []float32) candidate.Candidate {
	return candidate.Candidate{
		ProductID: productID,
		ImageID:   productID + "-img",
		Level:     candidate.LevelImage,
		Vector:    vector.Normalize(vec),
		ANNScore:  annScore,
	}
}

func scored(productID string, compositeScore float64, vec []float32) candidate.Candidate {
	c := cand(productID, compositeScore, vec)
	c.CompositeScore = compositeScore
	return c
}

func ptrFloat(v float64) *float64 { return &v }

func attrsFor(ids ...string) map[string]catalog.Attributes {
	out := make(map[string]catalog.Attributes, len(ids))
	for _, id := range ids {
		out[id] = catalog.Attributes{ProductID: id, Price: 10, InStock: true}
	}
	return out
}

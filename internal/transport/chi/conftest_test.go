package chi

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/catalog"
	domfb "github.com/kailas-cloud/visearch/internal/domain/feedback"
	"github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/vector"
	feedbackuc "github.com/kailas-cloud/visearch/internal/usecase/feedback"
	healthuc "github.com/kailas-cloud/visearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/visearch/internal/usecase/search"
)

// --- collaborator stubs ---

type stubIndex struct {
	cands []candidate.Candidate
	err   error
}

func (s *stubIndex) Search(
	_ context.Context, _ string, _ []float32, _ []string, _ int, _ bool,
) ([]candidate.Candidate, []string, error) {
	return s.cands, nil, s.err
}

func (s *stubIndex) Stats(context.Context, string) (int, error) {
	return len(s.cands), s.err
}

type stubCatalog struct{}

func (s *stubCatalog) Fetch(
	_ context.Context, _ string, ids []string,
) (map[string]catalog.Attributes, error) {
	attrs := make(map[string]catalog.Attributes, len(ids))
	for _, id := range ids {
		attrs[id] = catalog.Attributes{ProductID: id, Price: 10, InStock: true}
	}
	return attrs, nil
}

type stubPriors struct{}

func (s *stubPriors) Priors(context.Context, string, []string) (map[string]float64, error) {
	return map[string]float64{}, nil
}

type stubProfiles struct{}

func (s *stubProfiles) Get(context.Context, string) (profile.Profile, error) {
	return profile.Profile{}, domain.ErrProfileNotFound
}

type stubEmbedder struct{}

func (s *stubEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{0, 1}}, nil
}

type stubRecorder struct {
	sigs []domfb.Signal
	err  error
}

func (s *stubRecorder) Record(_ context.Context, _ string, sig domfb.Signal) error {
	if s.err != nil {
		return s.err
	}
	s.sigs = append(s.sigs, sig)
	return nil
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

// --- server builder ---

type serverStubs struct {
	index    *stubIndex
	recorder *stubRecorder
	pinger   *stubPinger
}

func newTestHandler(t *testing.T, apiKeys ...string) (http.Handler, *serverStubs) {
	t.Helper()
	stubs := &serverStubs{
		index:    &stubIndex{},
		recorder: &stubRecorder{},
		pinger:   &stubPinger{},
	}

	search := searchuc.New(
		stubs.index, &stubCatalog{}, &stubPriors{}, &stubProfiles{}, &stubEmbedder{},
		searchuc.Config{Dimension: 2, ModelVersion: "clip-test"},
	)
	feedback := feedbackuc.New(stubs.recorder)
	health := healthuc.New(stubs.pinger, nil)

	srv := NewServer(search, feedback, health, apiKeys, zap.NewNop())
	return srv.Router(), stubs
}

func normalized(vec []float32) []float32 { return vector.Normalize(vec) }

func testCandidate(productID string, score float64, vec []float32) candidate.Candidate {
	return candidate.Candidate{
		ProductID: productID,
		ImageID:   productID + "-img",
		Level:     candidate.LevelImage,
		Vector:    normalized(vec),
		ANNScore:  score,
	}
}

package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/rule"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/visearch/internal/domain/search/request"
	"github.com/kailas-cloud/visearch/internal/domain/search/result"
	"github.com/kailas-cloud/visearch/internal/logger"
	"github.com/kailas-cloud/visearch/internal/metrics"
)

// Config tunes the pipeline.
type Config struct {
	// Dimension is the index vector dimension; zero disables the check.
	Dimension int
	// Deadline bounds the whole request end to end.
	Deadline time.Duration
	// ModelVersion is reported in the response envelope.
	ModelVersion string
}

// ApplyDefaults fills zero values with production defaults.
func (c *Config) ApplyDefaults() {
	if c.Deadline <= 0 {
		c.Deadline = 700 * time.Millisecond
	}
}

// Service runs the retrieval-and-ranking pipeline: encode, retrieve,
// filter, rerank, diversify, boost, assemble. Stateless per request; all
// collaborators are read-only.
type Service struct {
	index    IndexSearcher
	catalog  CatalogReader
	priors   PriorReader
	profiles ProfileReader
	embed    Embedder
	cfg      Config
	now      func() time.Time
}

// New creates a search service.
func New(
	index IndexSearcher,
	catalog CatalogReader,
	priors PriorReader,
	profiles ProfileReader,
	embed Embedder,
	cfg Config,
) *Service {
	cfg.ApplyDefaults()
	return &Service{
		index:    index,
		catalog:  catalog,
		priors:   priors,
		profiles: profiles,
		embed:    embed,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Search executes a visual search request through the full pipeline.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	start := s.now()
	searchID := uuid.NewString()
	log := logger.FromContext(ctx).With(
		zap.String("search_id", searchID),
		zap.String("org_id", req.OrgID()),
	)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline)
	defer cancel()

	resp, err := s.search(ctx, log, searchID, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.SearchRequestsTotal.WithLabelValues("timeout").Inc()
			return result.Response{}, fmt.Errorf("search %s: %w", searchID, domain.ErrTimeout)
		}
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Response{}, err
	}

	resp.TookMs = s.now().Sub(start).Milliseconds()
	if len(resp.Results) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	}

	log.Info("Search completed",
		zap.Int("total", resp.Total),
		zap.Int("returned", len(resp.Results)),
		zap.Bool("degraded", resp.Degraded),
		zap.Int64("took_ms", resp.TookMs),
	)
	return resp, nil
}

func (s *Service) search(
	ctx context.Context, log *zap.Logger, searchID string, req *request.Request,
) (result.Response, error) {
	applied := req.Filters().Applied()

	prof, rules := s.loadProfile(ctx, log, req.OrgID())

	// Stage 1: encode.
	stageStart := s.now()
	query, err := s.encode(ctx, req, prof)
	if err != nil {
		return result.Response{}, err
	}
	s.observeStage("encode", stageStart)

	// Stage 2: retrieve.
	stageStart = s.now()
	pool := prof.PoolSize(req.TopK())
	failFast := prof.Degraded == profile.PolicyFail
	cands, degradedParts, err := s.index.Search(
		ctx, req.OrgID(), query, req.Filters().Categories(), pool, failFast,
	)
	if err != nil {
		return result.Response{}, stageErr(ctx, "retrieve", err)
	}
	s.observeStage("retrieve", stageStart)
	metrics.SearchCandidatePoolSize.Observe(float64(len(cands)))

	if len(degradedParts) > 0 {
		metrics.SearchDegradedPartitionsTotal.Add(float64(len(degradedParts)))
		log.Warn("Search degraded: partitions failed after retries",
			zap.Strings("partitions", degradedParts))
	}

	if len(cands) == 0 {
		s.observeEmptyPool(ctx, log, req.OrgID())
		resp := result.Empty(searchID, s.cfg.ModelVersion, applied)
		resp.Degraded = len(degradedParts) > 0
		return resp, nil
	}

	// Stage 3: attribute filter.
	stageStart = s.now()
	kept, err := s.filterStage(ctx, log, req, cands)
	if err != nil {
		return result.Response{}, err
	}
	s.observeStage("filter", stageStart)

	if len(kept) == 0 {
		resp := result.Empty(searchID, s.cfg.ModelVersion, applied)
		resp.Degraded = len(degradedParts) > 0
		return resp, nil
	}

	// Stage 4: rerank.
	stageStart = s.now()
	priors, err := s.priors.Priors(ctx, req.OrgID(), productIDs(kept))
	if err != nil {
		return result.Response{}, stageErr(ctx, "rerank", err)
	}
	kept = rerank(kept, query, priors, prof.Rerank, req.Region() == nil)
	s.observeStage("rerank", stageStart)

	// Diversification deduplicates by product, so total and the pagination
	// flags count distinct products: that is what a client can page over.
	// Counting raw image hits would advertise pages that can never exist.
	total := len(productIDs(kept))

	// Stage 5: diversify.
	stageStart = s.now()
	if err := ctx.Err(); err != nil {
		return result.Response{}, fmt.Errorf("diversify: %w", err)
	}
	lambda := prof.Lambda
	if l := req.Lambda(); l != nil {
		lambda = *l
	}
	selected := diversify(kept, lambda, req.Offset()+req.TopK())
	s.observeStage("diversify", stageStart)

	// Stage 6: business rules.
	stageStart = s.now()
	if misfires := applyRules(selected, rules, s.now()); misfires > 0 {
		log.Warn("Business rules misfired on some candidates", zap.Int("count", misfires))
	}
	s.observeStage("rules", stageStart)

	if len(degradedParts) > 0 {
		for i := range selected {
			selected[i].AddReason(candidate.ReasonDegraded)
		}
	}

	// Stage 7: assemble.
	results, hasNext, hasPrev := assemble(selected, total, req.Offset(), req.TopK())
	return result.Response{
		SearchID:       searchID,
		Results:        results,
		Total:          total,
		HasNext:        hasNext,
		HasPrev:        hasPrev,
		ModelVersion:   s.cfg.ModelVersion,
		AppliedFilters: applied,
		Degraded:       len(degradedParts) > 0,
	}, nil
}

// loadProfile fetches the tenant profile, falling back to engine defaults
// when none is stored. A rule set that fails to compile is skipped whole:
// a half-applied rule list would make ranking nondeterministic, and a
// tenant misconfiguration must not take search down.
func (s *Service) loadProfile(
	ctx context.Context, log *zap.Logger, orgID string,
) (profile.Profile, []rule.Compiled) {
	prof, err := s.profiles.Get(ctx, orgID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Warn("Failed to load ranking profile, using defaults", zap.Error(err))
		}
		prof = profile.Default(orgID)
	}

	rules, err := rule.Compile(prof.Rules)
	if err != nil {
		log.Warn("Business rules failed to compile, skipping rule stage", zap.Error(err))
		return prof, nil
	}
	return prof, rules
}

// encode resolves raw query text through the embedder if needed, then
// fuses image and text vectors with the effective weights.
func (s *Service) encode(
	ctx context.Context, req *request.Request, prof profile.Profile,
) ([]float32, error) {
	text := req.Text()
	if req.TextQuery() != "" {
		emb, err := s.embed.Embed(ctx, req.TextQuery())
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("encode: %w", ctx.Err())
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingProviderError, err)
		}
		text = emb.Embedding
	}

	imageWeight, textWeight := prof.ImageWeight, prof.TextWeight
	if iw, tw := req.FusionWeights(); iw != nil {
		imageWeight, textWeight = *iw, *tw
	}

	return fuseQuery(req.Image(), text, s.cfg.Dimension, imageWeight, textWeight)
}

// filterStage batch-fetches catalog attributes and applies hard filters.
func (s *Service) filterStage(
	ctx context.Context, log *zap.Logger, req *request.Request, cands []candidate.Candidate,
) ([]candidate.Candidate, error) {
	attrs, err := s.catalog.Fetch(ctx, req.OrgID(), productIDs(cands))
	if err != nil {
		return nil, stageErr(ctx, "filter", err)
	}

	outcome := applyFilters(cands, attrs, req.Filters())
	if outcome.attrsMissing > 0 {
		metrics.SearchDroppedCandidatesTotal.WithLabelValues("attrs_missing").
			Add(float64(outcome.attrsMissing))
		log.Warn("Dropped candidates with missing catalog attributes",
			zap.Int("count", outcome.attrsMissing))
	}
	if outcome.filtered > 0 {
		metrics.SearchDroppedCandidatesTotal.WithLabelValues("filtered").
			Add(float64(outcome.filtered))
	}
	return outcome.kept, nil
}

// stageErr prefers the deadline over the underlying failure: a query
// cancelled mid-flight reads as a timeout, not an index outage.
func stageErr(ctx context.Context, stage string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", stage, ctx.Err())
	}
	return fmt.Errorf("%s: %w", stage, err)
}

// observeEmptyPool classifies an empty retrieval: a tenant with no
// indexed vectors is a provisioning state, not a miss. The stats read is
// best-effort; on error the pool counts as a plain no-match.
func (s *Service) observeEmptyPool(ctx context.Context, log *zap.Logger, orgID string) {
	cause := "no_match"
	if n, err := s.index.Stats(ctx, orgID); err == nil && n == 0 {
		cause = "empty_index"
	}
	metrics.SearchEmptyPoolTotal.WithLabelValues(cause).Inc()
	log.Info("Search returned no candidates", zap.String("cause", cause))
}

func (s *Service) observeStage(stage string, start time.Time) {
	metrics.SearchStageDuration.WithLabelValues(stage).Observe(s.now().Sub(start).Seconds())
}

// productIDs lists unique product IDs preserving candidate order.
func productIDs(cands []candidate.Candidate) []string {
	seen := make(map[string]bool, len(cands))
	ids := make([]string, 0, len(cands))
	for i := range cands {
		if seen[cands[i].ProductID] {
			continue
		}
		seen[cands[i].ProductID] = true
		ids = append(ids, cands[i].ProductID)
	}
	return ids
}

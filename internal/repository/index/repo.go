// Package index implements the retrieval repository: concurrent KNN
// fan-out over a tenant's partition indexes with retry and merge.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/visearch/internal/db"
	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

// store is the consumer interface for retrieval operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string) (int, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Config tunes the partition fan-out.
type Config struct {
	// PartitionTimeout bounds a single partition query, retries included.
	PartitionTimeout time.Duration
	// RetryAttempts is the total number of tries per partition.
	RetryAttempts int
	// RetryBaseDelay seeds the exponential backoff between tries.
	RetryBaseDelay time.Duration
	// MaxConcurrency caps simultaneous partition queries. Zero means unbounded.
	MaxConcurrency int
}

// ApplyDefaults fills zero values with production defaults.
func (c *Config) ApplyDefaults() {
	if c.PartitionTimeout <= 0 {
		c.PartitionTimeout = 250 * time.Millisecond
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 20 * time.Millisecond
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 8
	}
}

// Repo implements usecase/search.IndexSearcher.
type Repo struct {
	store store
	cfg   Config
}

// New creates an index repository.
func New(s store, cfg Config) *Repo {
	cfg.ApplyDefaults()
	return &Repo{store: s, cfg: cfg}
}

// Partitions lists a tenant's partition categories, narrowed by category
// hints when given. Hints that name unknown partitions are ignored.
func (r *Repo) Partitions(ctx context.Context, orgID string, hints []string) ([]string, error) {
	members, err := r.store.SMembers(ctx, domain.PartitionSetKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("list partitions %s: %w", orgID, err)
	}
	if len(hints) == 0 {
		sort.Strings(members)
		return members, nil
	}

	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m] = true
	}

	narrowed := make([]string, 0, len(hints))
	for _, h := range hints {
		if known[h] {
			narrowed = append(narrowed, h)
		}
	}
	sort.Strings(narrowed)
	return narrowed, nil
}

// Stats returns the total vector count across a tenant's partitions.
// A partition whose index is missing counts as zero.
func (r *Repo) Stats(ctx context.Context, orgID string) (int, error) {
	parts, err := r.Partitions(ctx, orgID, nil)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, p := range parts {
		n, err := r.store.SearchCount(ctx, domain.PartitionIndexName(orgID, p))
		if err != nil {
			if errors.Is(err, db.ErrIndexNotFound) {
				continue
			}
			return 0, fmt.Errorf("count partition %s: %w", p, err)
		}
		total += n
	}
	return total, nil
}

// Search runs the KNN query against every listed partition concurrently,
// merges the per-partition hits descending by ANN score (ties ascending by
// product ID), and truncates to pool. failFast controls the degraded
// policy: true fails the whole search on any partition failure, false
// proceeds with completed partitions and reports the failed ones.
func (r *Repo) Search(
	ctx context.Context, orgID string, vector []float32,
	categories []string, pool int, failFast bool,
) ([]candidate.Candidate, []string, error) {
	parts, err := r.Partitions(ctx, orgID, categories)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) == 0 {
		return nil, nil, nil
	}

	var mu sync.Mutex
	merged := make([]candidate.Candidate, 0, pool)
	var degraded []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrency)

	for _, part := range parts {
		g.Go(func() error {
			cands, err := r.searchPartition(gctx, orgID, part, vector, pool)
			if err != nil {
				if failFast {
					return domain.NewPartitionError(part, err)
				}
				mu.Lock()
				degraded = append(degraded, part)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			merged = append(merged, cands...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return candidate.Less(&merged[i], &merged[j], func(c *candidate.Candidate) float64 {
			return c.ANNScore
		})
	})
	if len(merged) > pool {
		merged = merged[:pool]
	}

	sort.Strings(degraded)
	return merged, degraded, nil
}

// searchPartition queries one partition with bounded exponential backoff.
// A missing index reads as an empty partition, not a failure.
func (r *Repo) searchPartition(
	ctx context.Context, orgID, category string, vector []float32, k int,
) ([]candidate.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.PartitionTimeout)
	defer cancel()

	q := &db.KNNQuery{
		IndexName: domain.PartitionIndexName(orgID, category),
		Vector:    vector,
		K:         k,
		ReturnFields: []string{
			fieldProductID, fieldVariantID, fieldImageID,
			fieldLevel, fieldRegionConf, domain.VectorFieldName,
			"__vector_score",
		},
	}

	var lastErr error
	for attempt := 0; attempt < r.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := r.cfg.RetryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		sr, err := r.store.SearchKNN(ctx, q)
		if err == nil {
			return parseEntries(sr, domain.PartitionEntryPrefix(orgID, category)), nil
		}
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("partition %s after %d attempts: %w", category, r.cfg.RetryAttempts, lastErr)
}

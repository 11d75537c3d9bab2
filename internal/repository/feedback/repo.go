// Package feedback persists engagement counters per product and serves
// the smoothed engagement prior consumed by the reranker.
package feedback

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/visearch/internal/domain"
	domfb "github.com/kailas-cloud/visearch/internal/domain/feedback"
)

// Counter hash fields, one per signal type.
const (
	fieldClicks    = "clicks"
	fieldPurchases = "purchases"
	fieldLikes     = "likes"
	fieldDislikes  = "dislikes"
)

// Prior smoothing: purchases count triple, and the pseudo-count keeps
// low-volume products near neutral until real signal accumulates.
const (
	purchaseBoost = 3
	pseudoCount   = 20
)

// store is the consumer interface for feedback counters (ISP).
type store interface {
	HIncrBy(ctx context.Context, key, field string, val int64) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo implements usecase/feedback.Recorder and usecase/search.PriorReader.
type Repo struct {
	store store
}

// New creates a feedback repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Record increments the counter matching the signal type.
func (r *Repo) Record(ctx context.Context, orgID string, sig domfb.Signal) error {
	key := domain.FeedbackKey(orgID, sig.ProductID())

	var field string
	switch sig.Type() {
	case domfb.Click:
		field = fieldClicks
	case domfb.Purchase:
		field = fieldPurchases
	case domfb.Like:
		field = fieldLikes
	case domfb.Dislike:
		field = fieldDislikes
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidSignal, sig.Type())
	}

	if err := r.store.HIncrBy(ctx, key, field, 1); err != nil {
		return fmt.Errorf("record %s for %s: %w", field, sig.ProductID(), err)
	}
	return nil
}

// Priors reads engagement counters for the given products in one
// pipelined round-trip and returns the smoothed prior per product, in
// [0,1]. Products with no counters get the neutral prior 0.
func (r *Repo) Priors(ctx context.Context, orgID string, productIDs []string) (map[string]float64, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = domain.FeedbackKey(orgID, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch feedback counters: %w", err)
	}

	priors := make(map[string]float64, len(productIDs))
	for i, h := range hashes {
		priors[productIDs[i]] = smoothedPrior(h)
	}
	return priors, nil
}

// smoothedPrior blends the counters into a single engagement score:
// (clicks + 3*purchases + likes - dislikes) / (events + pseudoCount),
// clamped to [0,1].
func smoothedPrior(counters map[string]string) float64 {
	clicks := counterValue(counters, fieldClicks)
	purchases := counterValue(counters, fieldPurchases)
	likes := counterValue(counters, fieldLikes)
	dislikes := counterValue(counters, fieldDislikes)

	events := clicks + purchases + likes + dislikes
	if events == 0 {
		return 0
	}

	score := float64(clicks+purchaseBoost*purchases+likes-dislikes) / float64(events+pseudoCount)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func counterValue(counters map[string]string, field string) int64 {
	v, err := strconv.ParseInt(counters[field], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

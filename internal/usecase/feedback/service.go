// Package feedback records engagement signals that feed the reranker's
// popularity prior. Recording is fire-and-forget from the caller's point
// of view: a signal either validates and lands in the counters, or the
// request is rejected outright.
package feedback

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/visearch/internal/domain/feedback"
	"github.com/kailas-cloud/visearch/internal/logger"
	"github.com/kailas-cloud/visearch/internal/metrics"
)

// Service validates and records engagement signals.
type Service struct {
	recorder Recorder
}

// New creates a feedback service.
func New(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Record validates the raw signal fields and increments the per-product
// engagement counters. Returns domain.ErrInvalidSignal on bad input.
func (s *Service) Record(
	ctx context.Context, orgID, searchID, productID string, signalType feedback.Type,
) error {
	sig, err := feedback.New(searchID, productID, signalType)
	if err != nil {
		return err
	}

	if err := s.recorder.Record(ctx, orgID, sig); err != nil {
		return fmt.Errorf("record %s signal: %w", signalType, err)
	}

	metrics.FeedbackSignalsTotal.WithLabelValues(string(signalType)).Inc()
	logger.FromContext(ctx).Debug("Feedback signal recorded",
		zap.String("org_id", orgID),
		zap.String("search_id", sig.SearchID()),
		zap.String("product_id", sig.ProductID()),
		zap.String("type", string(sig.Type())),
	)
	return nil
}

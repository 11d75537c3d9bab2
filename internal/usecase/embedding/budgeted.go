package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// Budgeted wraps an Embedder with token budget enforcement. Transport
// metrics (requests, duration, tokens) are recorded in transport/openai;
// this layer owns budget tracking and the budget gauge only.
type Budgeted struct {
	inner    domain.Embedder
	provider string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewBudgeted wraps an embedder with budget enforcement. A nil budget
// makes the wrapper pass-through.
func NewBudgeted(inner domain.Embedder, provider string, budget BudgetChecker, logger *zap.Logger) *Budgeted {
	return &Budgeted{
		inner:    inner,
		provider: provider,
		budget:   budget,
		logger:   logger,
	}
}

// Embed checks the budget, delegates to the inner embedder, and records
// token usage.
func (b *Budgeted) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if b.budget != nil {
		if err := b.budget.Check(ctx); err != nil {
			b.logger.Error("Embedding budget exceeded",
				zap.String("provider", b.provider),
				zap.Error(err),
			)
			return domain.EmbeddingResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	result, err := b.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	if b.budget != nil && result.TotalTokens > 0 {
		b.budget.Record(int64(result.TotalTokens))
		gauge := metrics.EmbeddingBudgetTokensRemaining
		gauge.WithLabelValues(b.provider, "daily").Set(float64(b.budget.RemainingDaily()))
		gauge.WithLabelValues(b.provider, "monthly").Set(float64(b.budget.RemainingMonthly()))
	}

	return result, nil
}

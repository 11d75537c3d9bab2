package feedback

import (
	"context"

	"github.com/kailas-cloud/visearch/internal/domain/feedback"
)

// Recorder persists engagement signal counters.
type Recorder interface {
	Record(ctx context.Context, orgID string, sig feedback.Signal) error
}

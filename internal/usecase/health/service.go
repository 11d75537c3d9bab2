package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the embedding provider is down; image-only and
	// precomputed-text searches still work.
	Degraded Status = "degraded"
	// Unhealthy indicates the index store is down; no search can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when no raw-text embedding
// is configured.
func New(store StorePinger, embedding EmbeddingChecker) *Service {
	return &Service{store: store, embedding: embedding}
}

// Check runs health checks against all components. The index store is
// load-bearing for every request, so its failure is Unhealthy; a failing
// embedding provider only degrades raw-text queries.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	status := Healthy
	if err := s.store.Ping(ctx); err != nil {
		checks["index_store"] = CheckError
		status = Unhealthy
	} else {
		checks["index_store"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding_provider"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding_provider"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}

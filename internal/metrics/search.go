package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visearch",
			Name:      "search_stage_duration_seconds",
			Help:      "Search pipeline stage duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"stage"}, // encode / retrieve / filter / rerank / diversify / rules / assemble
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error" / "timeout"
	)

	SearchCandidatePoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "visearch",
			Name:      "search_candidate_pool_size",
			Help:      "ANN candidate pool size after the merge step",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	SearchDroppedCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visearch",
			Name:      "search_dropped_candidates_total",
			Help:      "Candidates dropped by the attribute filter",
		},
		[]string{"reason"}, // "attrs_missing" / "filtered"
	)

	SearchDegradedPartitionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "visearch",
			Name:      "search_degraded_partitions_total",
			Help:      "Partitions that failed after retries in degraded mode",
		},
	)

	SearchEmptyPoolTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visearch",
			Name:      "search_empty_pool_total",
			Help:      "Searches whose retrieval returned no candidates",
		},
		[]string{"cause"}, // "empty_index" / "no_match"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchStageDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchCandidatePoolSize)
	prometheus.MustRegister(SearchDroppedCandidatesTotal)
	prometheus.MustRegister(SearchDegradedPartitionsTotal)
	prometheus.MustRegister(SearchEmptyPoolTotal)
	searchMetricsRegistered = true
}

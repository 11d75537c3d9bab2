package metrics

import "github.com/prometheus/client_golang/prometheus"

// Feedback Prometheus metrics.
var (
	FeedbackSignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visearch",
			Name:      "feedback_signals_total",
			Help:      "Total number of recorded engagement signals",
		},
		[]string{"type"}, // "click" / "purchase" / "like" / "dislike"
	)
)

var feedbackMetricsRegistered bool

// RegisterFeedbackMetrics registers Prometheus feedback metrics. Must be called once from main.
func RegisterFeedbackMetrics() {
	if feedbackMetricsRegistered {
		return
	}
	prometheus.MustRegister(FeedbackSignalsTotal)
	feedbackMetricsRegistered = true
}

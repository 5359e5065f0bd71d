package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Content search metrics
	ContentSearches      prometheus.Counter
	ContentSearchLatency prometheus.Histogram

	// Q&A mutation counts by operation (ask, answer, comment, edit, delete, vote, pin)
	QAMutations *prometheus.CounterVec

	// Notification engine metrics
	NotificationsCreated prometheus.Counter
	NotificationRetries  prometheus.Counter
	NotificationFailures prometheus.Counter
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	metrics := &Metrics{
		ContentSearches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetidbit_content_searches_total",
			Help: "Total number of content search requests processed",
		}),

		ContentSearchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "codetidbit_content_search_duration_seconds",
			Help:    "Content search latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),

		QAMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "codetidbit_qa_mutations_total",
			Help: "Total number of Q&A mutations by operation",
		}, []string{"operation"}),

		NotificationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetidbit_notifications_created_total",
			Help: "Total number of notifications persisted",
		}),

		NotificationRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetidbit_notification_retries_total",
			Help: "Total number of notification persistence retries",
		}),

		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetidbit_notification_failures_total",
			Help: "Total number of notifications dropped after exhausting retries",
		}),
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance (may be nil in tests)
func GetMetrics() *Metrics {
	return globalMetrics
}

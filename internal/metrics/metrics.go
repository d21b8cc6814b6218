package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightbook_http_requests_total",
			Help: "Total HTTP requests processed by endpoint, method, and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flightbook_http_request_duration_seconds",
			Help:    "HTTP request latency distribution in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint", "method"},
	)

	// Store metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightbook_store_operations_total",
			Help: "Store operations by name and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// Persistence metrics
	PersistFlushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightbook_persist_flushes_total",
			Help: "Write-through flushes of the data files by outcome",
		},
		[]string{"outcome"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightbook_cache_hits_total",
			Help: "Cache hits by cache name",
		},
		[]string{"cache"},
	)
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightbook_cache_misses_total",
			Help: "Cache misses by cache name",
		},
		[]string{"cache"},
	)
)

// ObserveStoreOp records one store operation outcome.
func ObserveStoreOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveFlush records one persistence flush outcome.
func ObserveFlush(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PersistFlushesTotal.WithLabelValues(outcome).Inc()
}

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "instrument_rental",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status class.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "instrument_rental",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	processorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "instrument_rental",
			Name:      "processor_calls_total",
			Help:      "Payment processor calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, processorCalls)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route, method, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// IncProcessorCall counts one payment processor call.
func IncProcessorCall(operation, outcome string) {
	processorCalls.WithLabelValues(operation, outcome).Inc()
}

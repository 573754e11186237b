package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Name:      "inference_duration_seconds",
			Help:      "Inference call latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"task", "status"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "fallbacks_total",
			Help:      "Results replaced by a fallback record",
		},
		[]string{"operation", "reason"}, // reason: inference_failure, payload_parse_failure
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "inference_cache_lookups_total",
			Help:      "Inference response cache lookups",
		},
		[]string{"result"}, // result: hit, miss, error
	)

	BatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Name:      "batch_size",
			Help:      "Number of emails per batch request",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		},
		[]string{"method", "route", "status"},
	)

	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "events_total",
			Help:      "Bus events handled",
		},
		[]string{"subject", "status"},
	)
)

func RecordInference(task string, err error, d time.Duration) {
	InferenceDuration.WithLabelValues(task, status(err)).Observe(d.Seconds())
}

func RecordFallback(operation, reason string) {
	FallbacksTotal.WithLabelValues(operation, reason).Inc()
}

func RecordCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

func RecordBatch(operation string, size int) {
	BatchSize.WithLabelValues(operation).Observe(float64(size))
}

func RecordHTTPRequest(method, route string, code int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}

func RecordEvent(subject string, err error) {
	EventsTotal.WithLabelValues(subject, status(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

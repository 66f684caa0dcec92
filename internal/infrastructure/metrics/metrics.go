// Package metrics provides Prometheus metrics for the voice relay.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeUpstreamError = "upstream_error"
	OutcomeTransportErr  = "transport_error"
)

// UpstreamDurationInstrument is the otel histogram mirroring
// UpstreamRequestDuration for OTLP export.
const UpstreamDurationInstrument = "relay.upstream.duration"

// UpstreamDurationBuckets is shared by the Prometheus and otel upstream
// histograms so both exports bucket identically.
var UpstreamDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var (
	// HTTPRequests counts handled HTTP requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP handler latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequests counts calls to the realtime provider by outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_upstream_requests_total",
			Help: "Total number of upstream client secret requests",
		},
		[]string{"outcome"},
	)

	// UpstreamRequestDuration tracks the upstream round trip.
	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_upstream_request_duration_seconds",
			Help:    "Duration of upstream client secret requests",
			Buckets: UpstreamDurationBuckets,
		},
	)
)

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordUpstreamRequest records one upstream round trip.
func RecordUpstreamRequest(outcome string, d time.Duration) {
	UpstreamRequests.WithLabelValues(outcome).Inc()
	UpstreamRequestDuration.Observe(d.Seconds())
}

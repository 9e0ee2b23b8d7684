// Package metrics holds the Prometheus collectors of the planner.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Deconstruction results
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultFailed  = "failed"
	ResultError   = "error"
)

var (
	// deconstructTotal counts deconstructions by result and pattern
	deconstructTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hypoplan_deconstruct_total",
		Help: "Total hypothesis deconstructions by result and pattern type",
	}, []string{"result", "pattern"})

	// deconstructDuration tracks deconstruction latency
	deconstructDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hypoplan_deconstruct_duration_seconds",
		Help:    "Hypothesis deconstruction duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"composer"})

	// sqlGenerateTotal counts SQL generations by source
	sqlGenerateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hypoplan_sql_generate_total",
		Help: "Total SQL generations by generator",
	}, []string{"generator"})

	// httpRequestsTotal counts HTTP requests by route and status
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hypoplan_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// httpRequestDuration tracks HTTP latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hypoplan_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveDeconstruct records one deconstruction
func ObserveDeconstruct(composer, result, pattern string, elapsed time.Duration) {
	if pattern == "" {
		pattern = "none"
	}
	deconstructTotal.WithLabelValues(result, pattern).Inc()
	deconstructDuration.WithLabelValues(composer).Observe(elapsed.Seconds())
}

// ObserveSQLGenerate records one SQL generation
func ObserveSQLGenerate(generator string) {
	sqlGenerateTotal.WithLabelValues(generator).Inc()
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

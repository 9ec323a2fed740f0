// Package telemetry owns the Prometheus collectors and the OpenTelemetry
// tracer provider used by the HTTP server.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the server's collectors on one registry
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts HTTP requests by route, method and status code
	RequestsTotal *prometheus.CounterVec
	// RequestDuration observes handler latency by route
	RequestDuration *prometheus.HistogramVec
	// CalculationErrors counts rejected or failed engine calls
	CalculationErrors *prometheus.CounterVec
	// Recommendations counts recommendation requests by provider and outcome
	Recommendations *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drivefit_http_requests_total",
				Help: "HTTP requests served, by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drivefit_http_request_duration_seconds",
				Help:    "HTTP handler latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drivefit_calculation_errors_total",
				Help: "Engine calls that returned an error",
			},
			[]string{"operation", "error_type"},
		),
		Recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drivefit_recommendations_total",
				Help: "Recommendation requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

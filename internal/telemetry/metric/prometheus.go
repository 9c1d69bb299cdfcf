// Package metric provides Prometheus metrics for greetd.
//
// It exposes metrics in Prometheus format for monitoring request
// rates, latencies, and process health.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// RequestsTotal counts completed requests by method, path and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration samples request latency by method and path.
	RequestDuration *prometheus.HistogramVec

	// RequestsInFlight tracks requests currently being handled.
	RequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a metrics registry with all application metrics
// and the standard Go/process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greetd_http_requests_total",
			Help: "Total number of HTTP requests completed.",
		}, []string{"method", "path", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "greetd_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "greetd_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),

		registry: reg,
	}

	reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.RequestsInFlight,
		newBuildCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveRequest records a completed request.
func (r *Registry) ObserveRequest(method, path string, status int, duration time.Duration) {
	r.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed on /metrics.
// Each Metrics instance owns its registry, so independent servers (and
// tests) never collide on registration.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	activeRequests  prometheus.Gauge
	computeDuration prometheus.Histogram
	digitSum        prometheus.Gauge
}

// NewMetrics creates the metric instruments and their registry, including
// the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "factcalc_requests_total",
			Help: "Total number of HTTP requests handled, by path and status.",
		}, []string{"path", "status"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "factcalc_active_requests",
			Help: "Number of HTTP requests currently in flight.",
		}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "factcalc_computation_duration_seconds",
			Help:    "Wall-clock duration of factorial computations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		digitSum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "factcalc_last_digit_sum",
			Help: "Digit sum of the most recently computed factorial.",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.computeDuration,
		m.digitSum,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest increments the per-path request counter.
func (m *Metrics) CountRequest(path, status string) {
	m.requestsTotal.WithLabelValues(path, status).Inc()
}

// ObserveComputation records a computation outcome.
func (m *Metrics) ObserveComputation(seconds float64, digitSum int64) {
	m.computeDuration.Observe(seconds)
	m.digitSum.Set(float64(digitSum))
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

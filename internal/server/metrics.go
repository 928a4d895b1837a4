package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fpcore/internal/metrics"
)

// Metrics adds HTTP request metrics and Go runtime collectors to the
// registry of a CheckMetrics and serves the result.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	activeRequests  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	handler         http.Handler
}

// NewMetrics registers the HTTP collectors on checks' registry. It must be
// called at most once per CheckMetrics.
func NewMetrics(checks *metrics.CheckMetrics) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fpcore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fpcore",
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fpcore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"path"}),
	}

	reg := checks.Registry()
	reg.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(path string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

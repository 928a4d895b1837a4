package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fpcore"

// CheckMetrics records self-check outcomes in a private Prometheus registry.
// It is safe for concurrent use.
type CheckMetrics struct {
	registry *prometheus.Registry
	checks   *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	samples  prometheus.Counter
}

// NewCheckMetrics creates and registers the self-check collectors.
func NewCheckMetrics() *CheckMetrics {
	m := &CheckMetrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selfcheck",
			Name:      "checks_total",
			Help:      "Property evaluations performed, by property.",
		}, []string{"property"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selfcheck",
			Name:      "failures_total",
			Help:      "Property evaluations that did not hold, by property.",
		}, []string{"property"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "selfcheck",
			Name:      "check_duration_seconds",
			Help:      "Time spent evaluating a single property on one sample.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"property"}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selfcheck",
			Name:      "samples_total",
			Help:      "Random operand pairs drawn.",
		}),
	}
	m.registry.MustRegister(m.checks, m.failures, m.duration, m.samples)
	return m
}

// ObserveCheck records one evaluation of property.
func (m *CheckMetrics) ObserveCheck(property string, passed bool, d time.Duration) {
	m.checks.WithLabelValues(property).Inc()
	if !passed {
		m.failures.WithLabelValues(property).Inc()
	}
	m.duration.WithLabelValues(property).Observe(d.Seconds())
}

// ObserveSample records that one operand pair was drawn.
func (m *CheckMetrics) ObserveSample() {
	m.samples.Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *CheckMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes every collected metric in the Prometheus text format.
func (m *CheckMetrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

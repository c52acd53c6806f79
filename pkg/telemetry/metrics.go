package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus instruments for the dataset cache. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	tablesCopied *prometheus.CounterVec
	rowsCopied   *prometheus.CounterVec
	copyDuration *prometheus.HistogramVec
	reachChecks  *prometheus.CounterVec
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		tablesCopied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lahman",
				Name:      "tables_copied_total",
				Help:      "Total number of dataset tables copied into a backend",
			},
			[]string{"backend"},
		),
		rowsCopied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lahman",
				Name:      "rows_copied_total",
				Help:      "Total number of rows copied into a backend",
			},
			[]string{"backend"},
		),
		copyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lahman",
				Name:      "copy_duration_seconds",
				Help:      "Duration of backend population runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
		reachChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lahman",
				Name:      "reachability_checks_total",
				Help:      "Total number of backend reachability checks",
			},
			[]string{"backend", "result"},
		),
	}

	registry.MustRegister(m.tablesCopied, m.rowsCopied, m.copyDuration, m.reachChecks)
	return m
}

// Registry returns the underlying registry for embedding applications.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCopy records one backend population run.
func (m *Metrics) RecordCopy(backend string, tables int, rows int64, d time.Duration) {
	if m == nil {
		return
	}
	m.tablesCopied.WithLabelValues(backend).Add(float64(tables))
	m.rowsCopied.WithLabelValues(backend).Add(float64(rows))
	m.copyDuration.WithLabelValues(backend).Observe(d.Seconds())
}

// RecordReachability records the outcome of one reachability check.
func (m *Metrics) RecordReachability(backend string, ok bool) {
	if m == nil {
		return
	}
	result := "unreachable"
	if ok {
		result = "reachable"
	}
	m.reachChecks.WithLabelValues(backend, result).Inc()
}

// Package metrics collects Prometheus metrics for the experiment harness.
// The harness is an offline batch process with no scrape endpoint, so the
// registry is gathered once at the end of the run and written as a
// Prometheus text-format file next to the other report artifacts.
package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus metrics of a run.
type Metrics struct {
	ResampleOps      prometheus.Counter   // Total number of resample operations performed
	ResampleDuration prometheus.Histogram // Duration of resample operations in seconds
	ResampledRows    prometheus.Histogram // Row counts produced by resample operations
	ScoreOps         prometheus.Counter   // Total number of scoring procedures completed
	ScoreDuration    prometheus.Histogram // Duration of scoring procedures in seconds
	ErrorsTotal      prometheus.Counter   // Total number of errors encountered

	registry *prometheus.Registry
}

// New creates metrics on a private registry so parallel test runs never
// collide on the global one.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry)
	m.registry = registry
	return m
}

// NewWithRegistry creates metrics registered with the given registerer.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		ResampleOps: factory.NewCounter(prometheus.CounterOpts{
			Name: "resample_operations_total",
			Help: "Total number of resample operations performed",
		}),
		ResampleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "resample_duration_seconds",
			Help:    "Duration of resample operations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		ResampledRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "resampled_rows",
			Help:    "Row counts produced by resample operations",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		}),
		ScoreOps: factory.NewCounter(prometheus.CounterOpts{
			Name: "score_operations_total",
			Help: "Total number of scoring procedures completed",
		}),
		ScoreDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "score_duration_seconds",
			Help:    "Duration of scoring procedures in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
		}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors encountered",
		}),
	}
}

// ObserveResample records one completed resample operation.
func (m *Metrics) ObserveResample(strategy string, rows int, elapsed time.Duration) {
	m.ResampleOps.Inc()
	m.ResampleDuration.Observe(elapsed.Seconds())
	m.ResampledRows.Observe(float64(rows))
}

// ObserveScore records one completed scoring procedure.
func (m *Metrics) ObserveScore(strategy, label string, elapsed time.Duration) {
	m.ScoreOps.Inc()
	m.ScoreDuration.Observe(elapsed.Seconds())
}

// WriteTextfile gathers the private registry and writes it in Prometheus
// text format to the given path.
func (m *Metrics) WriteTextfile(path string) error {
	if m.registry == nil {
		return fmt.Errorf("metrics were not created with a private registry")
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(f, family); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return nil
}

package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utkarsh5026/sysbench/internal/bench"
)

// Metrics exports a run as Prometheus gauges. When a path is set the
// registry is written in the text exposition format once the run is done,
// ready for node_exporter's textfile collector.
type Metrics struct {
	registry *prometheus.Registry
	path     string
	runID    string

	duration *prometheus.GaugeVec
	score    *prometheus.GaugeVec
	progress prometheus.Gauge
	info     *prometheus.GaugeVec

	writeErr error
}

// NewMetrics creates the gauges on a private registry.
func NewMetrics(runID, path string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		path:     path,
		runID:    runID,
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sysbench",
			Name:      "workload_duration_seconds",
			Help:      "Measured value of the last run of each workload.",
		}, []string{"workload"}),
		score: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sysbench",
			Name:      "workload_score",
			Help:      "Normalized score of the last run of each workload.",
		}, []string{"workload"}),
		progress: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sysbench",
			Name:      "run_progress_percent",
			Help:      "Completed share of the selected workloads.",
		}),
		info: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sysbench",
			Name:      "run_info",
			Help:      "Always 1; labels identify the run.",
		}, []string{"run_id"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// OnProgress sets the progress gauge.
func (m *Metrics) OnProgress(percent int) {
	m.progress.Set(float64(percent))
}

// OnResult is a no-op: the message carries no workload id, so gauges are
// filled from the log in RecordResults.
func (m *Metrics) OnResult(string, float64) {}

// RecordResults sets the duration and score gauges of every workload in
// results.
func (m *Metrics) RecordResults(results bench.ResultLog) {
	m.info.WithLabelValues(m.runID).Set(1)
	for _, r := range results {
		m.duration.WithLabelValues(r.WorkloadID).Set(r.Duration)
		m.score.WithLabelValues(r.WorkloadID).Set(r.Score)
	}
}

// OnDone writes the textfile when a path is configured. A write failure is
// kept for Err.
func (m *Metrics) OnDone() {
	if m.path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(m.path, m.registry); err != nil {
		m.writeErr = fmt.Errorf("writing metrics to %s: %w", m.path, err)
	}
}

// Err returns the error of the last textfile write, if any.
func (m *Metrics) Err() error {
	return m.writeErr
}

// Package metrics holds the Prometheus collectors shared by the pipeline.
// Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of PreprocessRecords.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
	OutcomeCached = "cached"
)

var (
	// PreprocessRecords counts records handled by the preprocessing pool.
	PreprocessRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellsweep_preprocess_records_total",
			Help: "Records processed by the preprocessing pool",
		},
		[]string{"outcome"},
	)

	// PreprocessSeconds observes wall time of one pool Run.
	PreprocessSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cellsweep_preprocess_seconds",
			Help:    "Duration of a preprocessing pass over a dataset",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"dataset"},
	)

	// RunsTotal counts finished training runs by status.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellsweep_runs_total",
			Help: "Training runs finished, by final status",
		},
		[]string{"status"},
	)

	// ActiveRuns tracks runs currently holding a device slot.
	ActiveRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cellsweep_active_runs",
			Help: "Training runs currently holding a device slot",
		},
	)

	// EpochsTotal counts completed training epochs across all runs.
	EpochsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cellsweep_epochs_total",
			Help: "Training epochs completed",
		},
	)
)

func init() {
	prometheus.MustRegister(PreprocessRecords)
	prometheus.MustRegister(PreprocessSeconds)
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(ActiveRuns)
	prometheus.MustRegister(EpochsTotal)
}

// WriteTextfile dumps the default registry in the text exposition format,
// for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

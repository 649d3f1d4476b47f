package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	faultsTotal  *prometheus.CounterVec
	lastValue    *prometheus.GaugeVec
	runDuration  prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogold_fetches_total",
				Help: "Total number of successful source fetches",
			},
			[]string{"source"},
		),
		faultsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogold_faults_total",
				Help: "Total number of per-source faults by kind",
			},
			[]string{"source", "kind"},
		),
		lastValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogold_last_value",
				Help: "Last observed value per tracked series",
			},
			[]string{"series"},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "macrogold_run_duration_seconds",
				Help:    "Duration of full digest runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordFetch records one successful source fetch.
func (r *Recorder) RecordFetch(source string) {
	r.fetchesTotal.WithLabelValues(source).Inc()
}

// RecordFault records a per-source fault by kind.
func (r *Recorder) RecordFault(source, kind string) {
	r.faultsTotal.WithLabelValues(source, kind).Inc()
}

// RecordLastValue records the latest observed value for a series.
func (r *Recorder) RecordLastValue(series string, v float64) {
	r.lastValue.WithLabelValues(series).Set(v)
}

// RecordRunDuration records the duration of a full digest run.
func (r *Recorder) RecordRunDuration(seconds float64) {
	r.runDuration.Observe(seconds)
}

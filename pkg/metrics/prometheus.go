package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	signalsServed prometheus.Counter
	fetchDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditpull_adapter_fetches_total",
				Help: "Total number of successful adapter fetches",
			},
			[]string{"adapter"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditpull_adapter_fetch_errors_total",
				Help: "Total number of failed adapter fetches",
			},
			[]string{"adapter"},
		),
		signalsServed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "creditpull_signals_served_total",
				Help: "Total number of signal values returned to callers",
			},
		),
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditpull_adapter_fetch_duration_seconds",
				Help:    "Duration of adapter fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"adapter"},
		),
	}
}

// RecordFetch records a successful adapter fetch and its duration.
func (r *Recorder) RecordFetch(adapterName string, duration time.Duration) {
	r.fetchesTotal.WithLabelValues(adapterName).Inc()
	r.fetchDuration.WithLabelValues(adapterName).Observe(duration.Seconds())
}

// RecordFetchError records a failed adapter fetch.
func (r *Recorder) RecordFetchError(adapterName string) {
	r.errorsTotal.WithLabelValues(adapterName).Inc()
}

// RecordSignalsServed counts signal values returned to callers.
func (r *Recorder) RecordSignalsServed(count int) {
	r.signalsServed.Add(float64(count))
}

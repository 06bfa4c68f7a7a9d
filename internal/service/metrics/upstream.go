package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creditpull",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream data-source requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditpull",
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Errors by upstream data-source host",
		},
		[]string{"host"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(UpstreamLatency, UpstreamErrors)
	})
}

// Observe records one upstream request outcome.
func Observe(host string, seconds float64, failed bool) {
	UpstreamLatency.WithLabelValues(host).Observe(seconds)
	if failed {
		UpstreamErrors.WithLabelValues(host).Inc()
	}
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quotepull"

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	authAttempts     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a recorder whose collectors are registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		authAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Authentication strategy attempts by outcome",
			},
			[]string{"strategy", "outcome"},
		),
		upstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests sent to the quote provider",
			},
			[]string{"endpoint", "outcome"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by kind and hit",
			},
			[]string{"kind", "hit"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAuthAttempt counts one strategy run.
func (r *Recorder) RecordAuthAttempt(strategy, outcome string) {
	r.authAttempts.WithLabelValues(strategy, outcome).Inc()
}

// RecordUpstreamRequest counts one provider request.
func (r *Recorder) RecordUpstreamRequest(endpoint, outcome string) {
	r.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (r *Recorder) RecordCacheLookup(kind string, hit bool) {
	r.cacheLookups.WithLabelValues(kind, strconv.FormatBool(hit)).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

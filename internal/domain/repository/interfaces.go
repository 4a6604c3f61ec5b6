package repository

// Metrics records fetch pipeline activity.
type Metrics interface {
	RecordAuthAttempt(strategy, outcome string)
	RecordUpstreamRequest(endpoint, outcome string)
	RecordCacheLookup(kind string, hit bool)
	RecordLatency(op string, seconds float64)
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) RecordAuthAttempt(string, string)     {}
func (NoopMetrics) RecordUpstreamRequest(string, string) {}
func (NoopMetrics) RecordCacheLookup(string, bool)       {}
func (NoopMetrics) RecordLatency(string, float64)        {}

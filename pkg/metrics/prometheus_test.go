package metrics

import (
	"testing"

	"QuotePull/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.Metrics = (*Recorder)(nil)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordAuthAttempt("fc_cookie_query1", "failure")
	r.RecordAuthAttempt("homepage_scrape", "success")
	r.RecordUpstreamRequest("quote", "ok")
	r.RecordUpstreamRequest("quote", "ok")
	r.RecordCacheLookup("quote", true)
	r.RecordCacheLookup("quote", false)
	r.RecordLatency("get_quote", 0.2)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.authAttempts.WithLabelValues("fc_cookie_query1", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.upstreamRequests.WithLabelValues("quote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("quote", "true")))

	n, err := testutil.GatherAndCount(reg, "quotepull_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

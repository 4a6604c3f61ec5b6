package server

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContextStopsOnCancel(t *testing.T) {
	srv := xhttp.NewServer(nil, logger.Nop(), xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(srv, logger.Nop())

	var ticks atomic.Int32
	app.AddJanitor(5*time.Millisecond, func() { ticks.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	require.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshesImmediatelyThenOnTicks(t *testing.T) {
	var calls atomic.Int64
	r := New(func(context.Context) error {
		calls.Add(1)
		return nil
	}, 10*time.Millisecond, testLogger())

	go r.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	r.Stop()
}

func TestFailedRefreshDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int64
	r := New(func(context.Context) error {
		calls.Add(1)
		return errors.New("service unreachable")
	}, 10*time.Millisecond, testLogger())

	go r.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	r.Stop()
}

func TestStopIsIdempotentAndWaits(t *testing.T) {
	r := New(func(context.Context) error { return nil }, 10*time.Millisecond, testLogger())
	go r.Start(context.Background())

	r.Stop()
	r.Stop() // second call must not panic or block
}

func TestContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(func(context.Context) error { return nil }, 10*time.Millisecond, testLogger())

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
	assert.Error(t, ctx.Err())
}

package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher runs a refresh function on a fixed interval until stopped. The
// order list poller uses it; the interval ticks independently of any
// user-initiated mutation, and a failed refresh just waits for the next
// tick.
type Refresher struct {
	refresh  func(ctx context.Context) error
	interval time.Duration
	log      *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func New(refresh func(ctx context.Context) error, interval time.Duration, log *slog.Logger) *Refresher {
	return &Refresher{
		refresh:  refresh,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start refreshes once immediately, then on every tick. It returns after
// Stop is called or ctx is cancelled; run it on its own goroutine.
func (r *Refresher) Start(ctx context.Context) {
	defer close(r.done)

	r.tick(ctx)
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()
	if err := r.refresh(tickCtx); err != nil {
		r.log.Warn("refresh failed", "error", err)
	}
}

// Stop halts the loop and waits for the in-flight refresh to finish.
// Safe to call more than once.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

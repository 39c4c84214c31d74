package catalog

import (
	"context"
	"sync"
	"time"
)

// DebounceQuiet is the quiet period a search edit must survive before it
// produces a fetch.
const DebounceQuiet = 500 * time.Millisecond

// Debouncer coalesces rapid triggers per key. Each Wait supersedes any
// pending Wait for the same key; only the waiter still current when the quiet
// period elapses is released with true. Superseded and cancelled waiters get
// false and must not fetch.
type Debouncer struct {
	quiet time.Duration

	mu      sync.Mutex
	pending map[string]*waiter
}

type waiter struct {
	timer *time.Timer
	done  chan bool
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DebounceQuiet
	}
	return &Debouncer{
		quiet:   quiet,
		pending: make(map[string]*waiter),
	}
}

func (d *Debouncer) Wait(ctx context.Context, key string) bool {
	d.mu.Lock()
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		close(prev.done)
	}
	w := &waiter{done: make(chan bool, 1)}
	w.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		if d.pending[key] == w {
			delete(d.pending, key)
			w.done <- true
		}
		d.mu.Unlock()
	})
	d.pending[key] = w
	d.mu.Unlock()

	select {
	case fired, ok := <-w.done:
		return ok && fired
	case <-ctx.Done():
		d.mu.Lock()
		if d.pending[key] == w {
			w.timer.Stop()
			delete(d.pending, key)
		}
		d.mu.Unlock()
		return false
	}
}

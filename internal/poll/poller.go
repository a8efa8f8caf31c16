// Package poll runs cancellable fixed-interval tasks. It approximates
// real-time updates by re-fetching; there is no push channel, no backoff,
// and no automatic retry beyond the next tick.
package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Func performs one fetch and returns a closure that applies the result to
// view state, or nil when there is nothing to apply. Splitting fetch from
// apply lets the task drop a result that arrives after teardown.
type Func func(ctx context.Context) (apply func(), err error)

// Task is one repeating fetch. A view starts it on mount and stops it on
// teardown; Stop waits for the worker, so no apply runs after Stop returns.
type Task struct {
	interval time.Duration
	fn       Func
	log      *zap.Logger

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// New builds a task; it does not run until Start.
func New(interval time.Duration, fn Func, log *zap.Logger) *Task {
	if log == nil {
		log = zap.NewNop()
	}
	return &Task{interval: interval, fn: fn, log: log}
}

// Start launches the worker. The first fetch fires immediately, then once
// per interval. Fetch errors are logged and the task keeps ticking.
func (t *Task) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			t.tick(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (t *Task) tick(ctx context.Context) {
	apply, err := t.fn(ctx)
	if err != nil {
		t.log.Warn("poll", zap.Error(err))
		return
	}
	// The view may have been torn down while the fetch was in flight;
	// a late result must not write to disposed state.
	if ctx.Err() != nil {
		return
	}
	if apply != nil {
		apply()
	}
}

// Stop cancels the task and waits for the worker to exit. Safe to call
// more than once; a never-started task is a no-op.
func (t *Task) Stop() {
	t.stopOnce.Do(func() {
		if t.cancel == nil {
			return
		}
		t.cancel()
		<-t.done
	})
}

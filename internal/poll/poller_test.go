package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTask_FiresImmediatelyAndRepeats(t *testing.T) {
	t.Parallel()

	var fetches, applies atomic.Int32
	task := New(20*time.Millisecond, func(ctx context.Context) (func(), error) {
		fetches.Add(1)
		return func() { applies.Add(1) }, nil
	}, nil)

	task.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	task.Stop()

	if got := fetches.Load(); got < 2 {
		t.Fatalf("fetches=%d, want >=2 (immediate fire plus ticks)", got)
	}
	// the final fetch may race Stop and legitimately drop its apply
	if a, f := applies.Load(), fetches.Load(); a < f-1 || a > f {
		t.Fatalf("fetches=%d applies=%d, want them in lockstep", f, a)
	}
}

func TestTask_ErrorSkipsApplyAndKeepsTicking(t *testing.T) {
	t.Parallel()

	var fetches, applies atomic.Int32
	task := New(10*time.Millisecond, func(ctx context.Context) (func(), error) {
		n := fetches.Add(1)
		if n == 1 {
			return nil, errors.New("backend down")
		}
		return func() { applies.Add(1) }, nil
	}, nil)

	task.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	task.Stop()

	if fetches.Load() < 2 {
		t.Fatalf("task stopped ticking after an error: fetches=%d", fetches.Load())
	}
	if applies.Load() == 0 {
		t.Fatalf("no apply ran after the failed fetch")
	}
	if applies.Load() >= fetches.Load() {
		t.Fatalf("fetches=%d applies=%d, want the failed fetch to skip its apply", fetches.Load(), applies.Load())
	}
}

func TestTask_LateResultIsNotApplied(t *testing.T) {
	t.Parallel()

	fetching := make(chan struct{})
	release := make(chan struct{})
	var applied atomic.Bool

	task := New(time.Hour, func(ctx context.Context) (func(), error) {
		close(fetching)
		<-release
		return func() { applied.Store(true) }, nil
	}, nil)

	task.Start(context.Background())
	<-fetching

	// Tear the view down while the fetch is in flight, then let the
	// fetch finish.
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	task.Stop()

	if applied.Load() {
		t.Fatalf("late result was applied after teardown")
	}
}

func TestTask_StopWaitsForWorker(t *testing.T) {
	t.Parallel()

	var running atomic.Bool
	task := New(time.Hour, func(ctx context.Context) (func(), error) {
		running.Store(true)
		defer running.Store(false)
		time.Sleep(15 * time.Millisecond)
		return nil, nil
	}, nil)

	task.Start(context.Background())
	time.Sleep(5 * time.Millisecond)
	task.Stop()

	if running.Load() {
		t.Fatalf("Stop returned while the worker was still running")
	}
}

func TestTask_StopTwiceAndUnstarted(t *testing.T) {
	t.Parallel()

	task := New(time.Hour, func(ctx context.Context) (func(), error) { return nil, nil }, nil)
	task.Stop() // never started

	task2 := New(time.Hour, func(ctx context.Context) (func(), error) { return nil, nil }, nil)
	task2.Start(context.Background())
	task2.Stop()
	task2.Stop()
}

func TestTask_ParentContextCancelStopsTicking(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	task := New(10*time.Millisecond, func(ctx context.Context) (func(), error) {
		fetches.Add(1)
		return nil, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	task.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(25 * time.Millisecond)
	after := fetches.Load()
	time.Sleep(25 * time.Millisecond)

	if got := fetches.Load(); got != after {
		t.Fatalf("task kept fetching after parent cancel: %d -> %d", after, got)
	}
	task.Stop()
}

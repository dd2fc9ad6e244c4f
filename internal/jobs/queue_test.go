package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func startTestQueue(t *testing.T) *Queue {
	t.Helper()
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go q.Run(ctx)
	return q
}

func TestQueueRunsJobs(t *testing.T) {
	q := startTestQueue(t)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		q.Enqueue("count", 0, func(ctx context.Context) {
			ran.Add(1)
		})
	}
	q.Wait()

	if got := ran.Load(); got != 5 {
		t.Errorf("ran %d jobs, want 5", got)
	}
}

func TestQueueDelayedJob(t *testing.T) {
	q := startTestQueue(t)

	start := time.Now()
	var done atomic.Bool
	q.Enqueue("delayed", 20*time.Millisecond, func(ctx context.Context) {
		done.Store(true)
	})
	q.Wait()

	if !done.Load() {
		t.Fatal("delayed job never ran")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("job ran after %v, want at least the 20ms delay", elapsed)
	}
}

func TestQueueOrderPreserved(t *testing.T) {
	q := startTestQueue(t)

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		q.Enqueue("order", 0, func(ctx context.Context) {
			order = append(order, i)
		})
	}
	q.Wait()

	for i, v := range order {
		if v != i {
			t.Fatalf("jobs ran out of order: %v", order)
		}
	}
}

func TestQueueRecoversFromPanic(t *testing.T) {
	q := startTestQueue(t)

	var ran atomic.Bool
	q.Enqueue("panics", 0, func(ctx context.Context) {
		panic("boom")
	})
	q.Enqueue("after", 0, func(ctx context.Context) {
		ran.Store(true)
	})
	q.Wait()

	if !ran.Load() {
		t.Error("worker did not survive a panicking job")
	}
}

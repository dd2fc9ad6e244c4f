// Package jobs provides the deferred-execution queue the interview
// pipeline runs on. Submissions return immediately; question generation,
// answer evaluation and report synthesis run on a background worker,
// optionally after a delay.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name string
	fn   func(context.Context)
}

// Queue is a single-worker deferred job queue. Jobs enqueued with a delay
// enter the queue when the delay elapses; the worker then runs them one at
// a time in arrival order.
type Queue struct {
	jobs chan job
	wg   sync.WaitGroup
}

// NewQueue creates a queue. Run must be called for jobs to execute.
func NewQueue() *Queue {
	return &Queue{
		jobs: make(chan job, 64),
	}
}

// Enqueue schedules fn to run on the worker after delay. A delay of zero
// queues the job immediately.
func (q *Queue) Enqueue(name string, delay time.Duration, fn func(context.Context)) {
	q.wg.Add(1)
	j := job{name: name, fn: fn}
	if delay <= 0 {
		q.jobs <- j
		return
	}
	time.AfterFunc(delay, func() {
		q.jobs <- j
	})
}

// Run executes jobs until ctx is canceled. It is meant to be called once,
// in its own goroutine.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-q.jobs:
			q.runOne(ctx, j)
		}
	}
}

func (q *Queue) runOne(ctx context.Context, j job) {
	defer q.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "job", j.name, "panic", r)
		}
	}()
	start := time.Now()
	j.fn(ctx)
	slog.Debug("job finished", "job", j.name, "duration", time.Since(start))
}

// Wait blocks until every job enqueued so far has finished, including jobs
// whose delay has not yet elapsed. It requires a running worker to make
// progress.
func (q *Queue) Wait() {
	q.wg.Wait()
}

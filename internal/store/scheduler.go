package store

import (
	"context"
	"sync"
)

// Scheduler runs effect tasks outside the dispatch path.
type Scheduler interface {
	// Go starts fn. Implementations must not block on fn.
	Go(ctx context.Context, name string, fn func(ctx context.Context))
	// Wait blocks until every started task has returned.
	Wait()
}

// goroutineScheduler runs every task on its own goroutine.
type goroutineScheduler struct {
	wg sync.WaitGroup
}

// NewGoroutineScheduler returns the default scheduler.
func NewGoroutineScheduler() Scheduler {
	return &goroutineScheduler{}
}

func (s *goroutineScheduler) Go(ctx context.Context, _ string, fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(ctx)
	}()
}

func (s *goroutineScheduler) Wait() {
	s.wg.Wait()
}

// ManualScheduler queues tasks until the caller runs them. It lets tests
// decide exactly when, and in which order, effects complete.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []manualTask
}

type manualTask struct {
	name string
	ctx  context.Context
	fn   func(ctx context.Context)
}

// NewManualScheduler returns an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Go(ctx context.Context, name string, fn func(ctx context.Context)) {
	s.mu.Lock()
	s.pending = append(s.pending, manualTask{name: name, ctx: ctx, fn: fn})
	s.mu.Unlock()
}

// Wait is a no-op: queued tasks only run when asked to.
func (s *ManualScheduler) Wait() {}

// Pending returns the names of queued tasks in scheduling order.
func (s *ManualScheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.pending))
	for i, t := range s.pending {
		names[i] = t.name
	}
	return names
}

// RunAt runs the queued task at index i on the calling goroutine.
func (s *ManualScheduler) RunAt(i int) bool {
	s.mu.Lock()
	if i < 0 || i >= len(s.pending) {
		s.mu.Unlock()
		return false
	}
	t := s.pending[i]
	s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
	s.mu.Unlock()
	t.fn(t.ctx)
	return true
}

// RunNext runs the oldest queued task.
func (s *ManualScheduler) RunNext() bool {
	return s.RunAt(0)
}

// RunAll drains the queue, including tasks scheduled by the tasks it runs.
func (s *ManualScheduler) RunAll() int {
	n := 0
	for s.RunNext() {
		n++
	}
	return n
}

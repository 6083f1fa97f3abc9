package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/atomicstack/pokedex/internal/logging/events"
)

// Reducer maps the current state and one action to the next state and the
// effect that transition requests. Reducers must not block.
type Reducer[S, A any] func(state S, action A) (S, Effect[A])

type options struct {
	scheduler Scheduler
	parent    context.Context
}

// Option customises a Store.
type Option func(*options)

// WithScheduler replaces the default goroutine scheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithContext sets the parent context for every effect. Cancelling it has the
// same effect on outstanding work as Close, minus the wait.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.parent = ctx
		}
	}
}

// Store is the only place state changes. Actions are applied one at a time,
// in the order Dispatch enqueued them; a Dispatch issued while another
// transition is being applied (from a subscriber, or from an effect finishing
// on another goroutine) is queued and applied by the goroutine already
// draining the queue.
type Store[S, A any] struct {
	reducer   Reducer[S, A]
	scheduler Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    S
	queue    []A
	draining bool
	closed   bool
	subs     map[int]func(S)
	nextSub  int
	greet    []int // subscribers still owed their initial state
}

// New builds a store around initial state and the root reducer.
func New[S, A any](initial S, reducer Reducer[S, A], opts ...Option) *Store[S, A] {
	o := options{parent: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = NewGoroutineScheduler()
	}
	ctx, cancel := context.WithCancel(o.parent)
	return &Store[S, A]{
		reducer:   reducer,
		scheduler: o.scheduler,
		ctx:       ctx,
		cancel:    cancel,
		state:     initial,
		subs:      make(map[int]func(S)),
	}
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every published state, starting with the
// current one. The returned function removes the subscription. A subscriber
// never sees an older state after a newer one: the initial state is delivered
// by whichever goroutine owns publication at the time.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	unsubscribe = s.unsubscriber(id)
	if s.draining {
		s.greet = append(s.greet, id)
		s.mu.Unlock()
		return unsubscribe
	}
	s.draining = true
	current := s.state
	s.mu.Unlock()

	fn(current)

	s.mu.Lock()
	s.drainLocked()
	return unsubscribe
}

func (s *Store[S, A]) unsubscriber(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Dispatch applies action to the current state. When no other transition is
// in flight the action is applied, published and its effect scheduled before
// Dispatch returns.
func (s *Store[S, A]) Dispatch(action A) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		events.Store.Dropped(actionName(action))
		return
	}
	s.queue = append(s.queue, action)
	if s.draining {
		s.mu.Unlock()
		events.Store.Queued(actionName(action))
		return
	}
	s.draining = true
	s.drainLocked()
}

// drainLocked publishes pending initial states and applies queued actions
// until both are empty. It is entered with mu held and draining set, and
// returns with mu released.
func (s *Store[S, A]) drainLocked() {
	for len(s.greet) > 0 || len(s.queue) > 0 {
		if len(s.greet) > 0 {
			id := s.greet[0]
			s.greet = s.greet[1:]
			fn, ok := s.subs[id]
			current := s.state
			s.mu.Unlock()
			if ok {
				fn(current)
			}
			s.mu.Lock()
			continue
		}

		next := s.queue[0]
		s.queue[0] = *new(A)
		s.queue = s.queue[1:]

		state, effect := s.reducer(s.state, next)
		s.state = state
		subs := s.subscribersLocked()
		s.mu.Unlock()

		events.Store.Apply(actionName(next), effect.Names())
		for _, fn := range subs {
			fn(state)
		}
		s.schedule(effect)

		s.mu.Lock()
	}
	s.queue = nil
	s.greet = nil
	s.draining = false
	s.mu.Unlock()
}

// Close cancels every outstanding effect, waits for their tasks to return and
// rejects further actions. Cancelled effects never dispatch.
func (s *Store[S, A]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.scheduler.Wait()
	events.Store.Closed()
}

// Context is cancelled when the store closes.
func (s *Store[S, A]) Context() context.Context {
	return s.ctx
}

func (s *Store[S, A]) subscribersLocked() []func(S) {
	if len(s.subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(S), len(ids))
	for i, id := range ids {
		out[i] = s.subs[id]
	}
	return out
}

func (s *Store[S, A]) schedule(effect Effect[A]) {
	for _, t := range effect.tasks {
		events.Effect.Queue(t.name)
		s.scheduler.Go(s.ctx, t.name, func(ctx context.Context) {
			if ctx.Err() != nil {
				events.Effect.Cancelled(t.name)
				return
			}
			action := t.run(ctx)
			if ctx.Err() != nil {
				events.Effect.Cancelled(t.name)
				return
			}
			events.Effect.Result(t.name, actionName(action))
			s.Dispatch(action)
		})
	}
}

func actionName(action interface{}) string {
	if named, ok := action.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", action)
}

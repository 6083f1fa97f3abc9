package store

import (
	"context"
	"sync"
	"testing"
	"time"
)

type counterState struct {
	Value   int
	History []string
}

type counterAction struct {
	kind  string
	delta int
}

func counterReducer(state counterState, action counterAction) (counterState, Effect[counterAction]) {
	state.History = append(append([]string(nil), state.History...), action.kind)
	switch action.kind {
	case "add":
		state.Value += action.delta
	case "fetch":
		delta := action.delta
		return state, Run("fetch", func(ctx context.Context) counterAction {
			return counterAction{kind: "add", delta: delta}
		})
	case "fetch-twice":
		return state, Merge(
			Run("first", func(ctx context.Context) counterAction { return counterAction{kind: "add", delta: 1} }),
			Run("second", func(ctx context.Context) counterAction { return counterAction{kind: "add", delta: 10} }),
		)
	}
	return state, None[counterAction]()
}

func TestDispatchAppliesSynchronously(t *testing.T) {
	s := New(counterState{}, counterReducer, WithScheduler(NewManualScheduler()))
	s.Dispatch(counterAction{kind: "add", delta: 2})
	s.Dispatch(counterAction{kind: "add", delta: 3})
	if got := s.State().Value; got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestSubscribeReceivesCurrentAndSubsequentStates(t *testing.T) {
	s := New(counterState{Value: 1}, counterReducer, WithScheduler(NewManualScheduler()))
	var seen []int
	unsubscribe := s.Subscribe(func(st counterState) { seen = append(seen, st.Value) })
	s.Dispatch(counterAction{kind: "add", delta: 1})
	unsubscribe()
	s.Dispatch(counterAction{kind: "add", delta: 1})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("unexpected publications %v", seen)
	}
}

func TestEffectCompletionReentersAsAction(t *testing.T) {
	sched := NewManualScheduler()
	s := New(counterState{}, counterReducer, WithScheduler(sched))
	s.Dispatch(counterAction{kind: "fetch", delta: 7})
	if got := s.State().Value; got != 0 {
		t.Fatalf("effect must not run inside dispatch, got %d", got)
	}
	if pending := sched.Pending(); len(pending) != 1 || pending[0] != "fetch" {
		t.Fatalf("expected one fetch task, got %v", pending)
	}
	sched.RunAll()
	st := s.State()
	if st.Value != 7 {
		t.Fatalf("expected 7 after effect, got %d", st.Value)
	}
	if len(st.History) != 2 || st.History[1] != "add" {
		t.Fatalf("expected follow-up add action, got %v", st.History)
	}
}

func TestEffectsMayCompleteOutOfOrder(t *testing.T) {
	sched := NewManualScheduler()
	s := New(counterState{}, counterReducer, WithScheduler(sched))
	s.Dispatch(counterAction{kind: "fetch-twice"})
	if !sched.RunAt(1) {
		t.Fatalf("expected second task to run")
	}
	if got := s.State().Value; got != 10 {
		t.Fatalf("expected second task applied first, got %d", got)
	}
	sched.RunNext()
	if got := s.State().Value; got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
}

func TestCloseCancelsOutstandingEffects(t *testing.T) {
	sched := NewManualScheduler()
	s := New(counterState{}, counterReducer, WithScheduler(sched))
	s.Dispatch(counterAction{kind: "fetch", delta: 3})
	s.Close()
	sched.RunAll()
	if got := s.State().Value; got != 0 {
		t.Fatalf("cancelled effect must not dispatch, got %d", got)
	}
	s.Dispatch(counterAction{kind: "add", delta: 1})
	if got := s.State().Value; got != 0 {
		t.Fatalf("closed store must drop actions, got %d", got)
	}
}

func TestCloseWaitsForRunningEffect(t *testing.T) {
	started := make(chan struct{})
	reducer := func(st counterState, a counterAction) (counterState, Effect[counterAction]) {
		if a.kind != "block" {
			st.Value += a.delta
			return st, None[counterAction]()
		}
		return st, Run("block", func(ctx context.Context) counterAction {
			close(started)
			<-ctx.Done()
			return counterAction{kind: "add", delta: 100}
		})
	}
	s := New(counterState{}, reducer)
	s.Dispatch(counterAction{kind: "block"})
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("effect never started")
	}
	s.Close()
	if got := s.State().Value; got != 0 {
		t.Fatalf("expected cancelled completion to be dropped, got %d", got)
	}
}

func TestReentrantDispatchIsQueued(t *testing.T) {
	s := New(counterState{}, counterReducer, WithScheduler(NewManualScheduler()))
	var published []int
	s.Subscribe(func(st counterState) {
		published = append(published, st.Value)
		if st.Value == 1 {
			s.Dispatch(counterAction{kind: "add", delta: 10})
		}
	})
	s.Dispatch(counterAction{kind: "add", delta: 1})
	want := []int{0, 1, 11}
	if len(published) != len(want) {
		t.Fatalf("expected %v, got %v", want, published)
	}
	for i := range want {
		if published[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, published)
		}
	}
}

func TestConcurrentDispatchSerialises(t *testing.T) {
	s := New(counterState{}, counterReducer)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(counterAction{kind: "add", delta: 1})
		}()
	}
	wg.Wait()
	if got := s.State().Value; got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := len(s.State().History); got != 100 {
		t.Fatalf("expected 100 transitions, got %d", got)
	}
}

func TestMapWrapsChildActions(t *testing.T) {
	child := Run("child", func(ctx context.Context) int { return 4 })
	parent := Map(child, func(n int) counterAction { return counterAction{kind: "add", delta: n} })
	if parent.Len() != 1 || parent.Names()[0] != "child" {
		t.Fatalf("unexpected mapped effect %v", parent.Names())
	}
	got := parent.Execute(context.Background())
	if len(got) != 1 || got[0].delta != 4 {
		t.Fatalf("unexpected actions %#v", got)
	}
	if !Map(None[int](), func(n int) counterAction { return counterAction{} }).IsNone() {
		t.Fatalf("expected mapping none to stay none")
	}
}

func TestSubscribeInitialStatePrecedesQueuedTransition(t *testing.T) {
	s := New(counterState{}, counterReducer, WithScheduler(NewManualScheduler()))
	entered := make(chan struct{})
	release := make(chan struct{})
	var seen []int
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Subscribe(func(st counterState) {
			seen = append(seen, st.Value)
			if len(seen) == 1 {
				close(entered)
				<-release
			}
		})
	}()

	<-entered
	s.Dispatch(counterAction{kind: "add", delta: 1})
	close(release)
	<-done

	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Fatalf("expected publications [0 1], got %v", seen)
	}
	if got := s.State().Value; got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestSubscribeDuringDrainReceivesStateInOrder(t *testing.T) {
	s := New(counterState{}, counterReducer, WithScheduler(NewManualScheduler()))
	var late []int
	s.Subscribe(func(st counterState) {
		if st.Value == 1 {
			s.Subscribe(func(st counterState) { late = append(late, st.Value) })
			s.Dispatch(counterAction{kind: "add", delta: 1})
		}
	})
	s.Dispatch(counterAction{kind: "add", delta: 1})
	if len(late) != 2 || late[0] != 1 || late[1] != 2 {
		t.Fatalf("expected late subscriber to see [1 2], got %v", late)
	}
}

func TestParentContextCancellationDropsEffects(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sched := NewManualScheduler()
	s := New(counterState{}, counterReducer, WithScheduler(sched), WithContext(parent))
	defer s.Close()

	s.Dispatch(counterAction{kind: "fetch", delta: 5})
	cancel()
	sched.RunAll()
	if got := s.State().Value; got != 0 {
		t.Fatalf("expected cancelled parent to drop completion, got %d", got)
	}
	if s.Context().Err() == nil {
		t.Fatalf("expected store context to be cancelled with its parent")
	}
}

package store

import "context"

type task[A any] struct {
	name string
	run  func(ctx context.Context) A
}

// Effect describes asynchronous work a reducer asks the store to perform.
// Every task in an effect yields exactly one follow-up action. The zero value
// is the empty effect.
type Effect[A any] struct {
	tasks []task[A]
}

// None returns the empty effect.
func None[A any]() Effect[A] {
	return Effect[A]{}
}

// Run declares a single task. name is used for tracing only.
func Run[A any](name string, fn func(ctx context.Context) A) Effect[A] {
	if fn == nil {
		return Effect[A]{}
	}
	return Effect[A]{tasks: []task[A]{{name: name, run: fn}}}
}

// Merge combines effects; their tasks run concurrently and complete in any
// order.
func Merge[A any](effects ...Effect[A]) Effect[A] {
	var n int
	for _, e := range effects {
		n += len(e.tasks)
	}
	if n == 0 {
		return Effect[A]{}
	}
	tasks := make([]task[A], 0, n)
	for _, e := range effects {
		tasks = append(tasks, e.tasks...)
	}
	return Effect[A]{tasks: tasks}
}

// Map lifts a child effect into a parent action space by wrapping every
// resulting action with f.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	if len(e.tasks) == 0 {
		return Effect[B]{}
	}
	tasks := make([]task[B], len(e.tasks))
	for i, t := range e.tasks {
		run := t.run
		tasks[i] = task[B]{
			name: t.name,
			run: func(ctx context.Context) B {
				return f(run(ctx))
			},
		}
	}
	return Effect[B]{tasks: tasks}
}

// IsNone reports whether the effect has no work.
func (e Effect[A]) IsNone() bool {
	return len(e.tasks) == 0
}

// Len returns the number of tasks.
func (e Effect[A]) Len() int {
	return len(e.tasks)
}

// Names lists the task names in declaration order.
func (e Effect[A]) Names() []string {
	if len(e.tasks) == 0 {
		return nil
	}
	names := make([]string, len(e.tasks))
	for i, t := range e.tasks {
		names[i] = t.name
	}
	return names
}

// Execute runs every task synchronously, in order, and returns the resulting
// actions. Reducer tests use it to drive an effect without a store.
func (e Effect[A]) Execute(ctx context.Context) []A {
	if len(e.tasks) == 0 {
		return nil
	}
	out := make([]A, 0, len(e.tasks))
	for _, t := range e.tasks {
		out = append(out, t.run(ctx))
	}
	return out
}

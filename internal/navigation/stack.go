// Package navigation models a push/pop stack of per-screen states. Every frame
// gets a stable ID when pushed so that actions, and the completions of effects
// started by a frame, can be routed back to that frame even after frames above
// or below it have come and gone.
package navigation

// ID identifies a frame for as long as it stays on the stack. IDs are never
// reused within one stack.
type ID int

type element[S any] struct {
	id    ID
	state S
}

// Stack is an immutable value: every method that changes it returns a new
// Stack and leaves the receiver, and any copy of it, untouched.
type Stack[S any] struct {
	elems []element[S]
	next  ID
}

// NewStack builds a stack holding states, bottom first.
func NewStack[S any](states ...S) Stack[S] {
	var s Stack[S]
	for _, st := range states {
		s, _ = s.Push(st)
	}
	return s
}

// Len returns the number of frames.
func (s Stack[S]) Len() int {
	return len(s.elems)
}

// At returns the state of the frame at index i, bottom first.
func (s Stack[S]) At(i int) S {
	return s.elems[i].state
}

// IDAt returns the ID of the frame at index i.
func (s Stack[S]) IDAt(i int) (ID, bool) {
	if i < 0 || i >= len(s.elems) {
		return 0, false
	}
	return s.elems[i].id, true
}

// Top returns the topmost frame.
func (s Stack[S]) Top() (ID, S, bool) {
	if len(s.elems) == 0 {
		var zero S
		return 0, zero, false
	}
	e := s.elems[len(s.elems)-1]
	return e.id, e.state, true
}

// Lookup finds the frame with the given ID.
func (s Stack[S]) Lookup(id ID) (S, bool) {
	if i := s.index(id); i >= 0 {
		return s.elems[i].state, true
	}
	var zero S
	return zero, false
}

// Push appends state as the new top frame.
func (s Stack[S]) Push(state S) (Stack[S], ID) {
	id := s.next + 1
	elems := make([]element[S], len(s.elems), len(s.elems)+1)
	copy(elems, s.elems)
	elems = append(elems, element[S]{id: id, state: state})
	return Stack[S]{elems: elems, next: id}, id
}

// Pop removes the top frame.
func (s Stack[S]) Pop() (Stack[S], bool) {
	if len(s.elems) == 0 {
		return s, false
	}
	return s.truncate(len(s.elems) - 1), true
}

// PopFrom removes the frame with the given ID and every frame above it.
func (s Stack[S]) PopFrom(id ID) (Stack[S], bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	return s.truncate(i), true
}

// Update replaces the state of one frame.
func (s Stack[S]) Update(id ID, state S) (Stack[S], bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	elems := make([]element[S], len(s.elems))
	copy(elems, s.elems)
	elems[i].state = state
	return Stack[S]{elems: elems, next: s.next}, true
}

func (s Stack[S]) truncate(n int) Stack[S] {
	if n == 0 {
		return Stack[S]{next: s.next}
	}
	elems := make([]element[S], n)
	copy(elems, s.elems[:n])
	return Stack[S]{elems: elems, next: s.next}
}

func (s Stack[S]) index(id ID) int {
	for i, e := range s.elems {
		if e.id == id {
			return i
		}
	}
	return -1
}

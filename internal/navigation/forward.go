package navigation

import (
	"fmt"

	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/store"
)

// Kind tags the variants of Action.
type Kind int

const (
	// KindElement routes the wrapped action to one frame.
	KindElement Kind = iota
	// KindPopFrom removes a frame and everything above it.
	KindPopFrom
	// KindPop removes the top frame.
	KindPop
)

// Action is addressed to a Stack. Build it with Element, PopFrom or Pop.
type Action[A any] struct {
	Kind   Kind
	ID     ID
	Action A
}

// Element wraps a frame action for the frame with the given ID.
func Element[A any](id ID, action A) Action[A] {
	return Action[A]{Kind: KindElement, ID: id, Action: action}
}

// PopFrom asks the stack to drop frame id and everything above it.
func PopFrom[A any](id ID) Action[A] {
	return Action[A]{Kind: KindPopFrom, ID: id}
}

// Pop asks the stack to drop its top frame.
func Pop[A any]() Action[A] {
	return Action[A]{Kind: KindPop}
}

func (a Action[A]) String() string {
	switch a.Kind {
	case KindElement:
		return fmt.Sprintf("element(%d, %T)", a.ID, a.Action)
	case KindPopFrom:
		return fmt.Sprintf("popFrom(%d)", a.ID)
	case KindPop:
		return "pop"
	}
	return "unknown"
}

// Forward applies a stack action. Element actions run reduce against exactly
// one frame and lift the frame's effect so its completion comes back tagged
// with the same frame ID; frames other than the target are never touched.
// Element actions for frames that are no longer on the stack are dropped.
func Forward[S, A any](stack Stack[S], action Action[A], reduce func(S, A) (S, store.Effect[A])) (Stack[S], store.Effect[Action[A]]) {
	switch action.Kind {
	case KindElement:
		frame, ok := stack.Lookup(action.ID)
		if !ok {
			events.Nav.Orphan(int(action.ID))
			return stack, store.None[Action[A]]()
		}
		next, effect := reduce(frame, action.Action)
		stack, _ = stack.Update(action.ID, next)
		id := action.ID
		return stack, store.Map(effect, func(a A) Action[A] { return Element(id, a) })
	case KindPopFrom:
		if popped, ok := stack.PopFrom(action.ID); ok {
			events.Nav.Pop(int(action.ID), popped.Len())
			return popped, store.None[Action[A]]()
		}
	case KindPop:
		if id, _, ok := stack.Top(); ok {
			popped, _ := stack.Pop()
			events.Nav.Pop(int(id), popped.Len())
			return popped, store.None[Action[A]]()
		}
	}
	return stack, store.None[Action[A]]()
}

package list

import (
	"fmt"

	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/navigation"
	"github.com/atomicstack/pokedex/internal/pokemon"
)

// Action is implemented by every list action below.
type Action interface {
	listAction()
}

// OnAppear starts the initial fetch.
type OnAppear struct{}

// LoadMore fetches the next page.
type LoadMore struct{}

// Retry re-issues whichever fetch last failed.
type Retry struct{}

// SetFilter replaces the name filter.
type SetFilter struct {
	Query string
}

// FetchResult completes a page fetch. Entities is nil when Err is set.
type FetchResult struct {
	Purpose   Purpose
	RequestID string
	Start     int
	Entities  []pokemon.Pokemon
	Err       error
}

// Item routes a cell action to the cell with the given id.
type Item struct {
	ID     int
	Action item.Action
}

// ItemDelegate carries an event a cell sent upward.
type ItemDelegate struct {
	ID       int
	Delegate item.Delegate
}

// PathAction routes to the navigation stack.
type PathAction struct {
	Action navigation.Action[FrameAction]
}

// FrameAction is addressed to one frame. DetailAction is the only variant.
type FrameAction interface {
	frameAction()
}

// DetailAction wraps a detail screen action.
type DetailAction struct {
	Action detail.Action
}

func (DetailAction) frameAction() {}

func (OnAppear) listAction()     {}
func (LoadMore) listAction()     {}
func (Retry) listAction()        {}
func (SetFilter) listAction()    {}
func (FetchResult) listAction()  {}
func (Item) listAction()         {}
func (ItemDelegate) listAction() {}
func (PathAction) listAction()   {}

func (OnAppear) String() string { return "list.onAppear" }
func (LoadMore) String() string { return "list.loadMore" }
func (Retry) String() string    { return "list.retry" }

func (a SetFilter) String() string { return fmt.Sprintf("list.setFilter(%q)", a.Query) }

func (a FetchResult) String() string {
	if a.Err != nil {
		return fmt.Sprintf("list.fetchResult(%s, failure)", a.Purpose)
	}
	return fmt.Sprintf("list.fetchResult(%s, %d)", a.Purpose, len(a.Entities))
}

func (a Item) String() string { return fmt.Sprintf("list.item(%d, %v)", a.ID, a.Action) }

func (a ItemDelegate) String() string {
	return fmt.Sprintf("list.itemDelegate(%d, %v)", a.ID, a.Delegate)
}

func (a PathAction) String() string { return "list.path(" + a.Action.String() + ")" }

// Tap is shorthand for the action a host sends when a cell is selected.
func Tap(id int) Action {
	return Item{ID: id, Action: item.Tapped{}}
}

// ToFrame addresses a detail action to frame id.
func ToFrame(id navigation.ID, action detail.Action) Action {
	return PathAction{Action: navigation.Element[FrameAction](id, DetailAction{Action: action})}
}

// ToTop addresses a detail action to the top frame. It returns nil when the
// stack is empty.
func ToTop(state State, action detail.Action) Action {
	id, _, ok := state.Path.Top()
	if !ok {
		return nil
	}
	return ToFrame(id, action)
}

// ToIndex addresses a detail action to the frame at stack index i.
func ToIndex(state State, i int, action detail.Action) Action {
	id, ok := state.Path.IDAt(i)
	if !ok {
		return nil
	}
	return ToFrame(id, action)
}

// Back pops the top frame.
func Back() Action {
	return PathAction{Action: navigation.Pop[FrameAction]()}
}

// BackTo pops frame id and everything above it.
func BackTo(id navigation.ID) Action {
	return PathAction{Action: navigation.PopFrom[FrameAction](id)}
}

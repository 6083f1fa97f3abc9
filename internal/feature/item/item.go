// Package item is the reducer for one cell of the list.
package item

import (
	"fmt"

	"github.com/atomicstack/pokedex/internal/pokemon"
	"github.com/atomicstack/pokedex/internal/shared"
)

// State is one cell. ID always equals Pokemon.ID.
type State struct {
	ID      int
	Pokemon pokemon.Pokemon
	Flag    shared.Handle[bool]
}

// New wraps p in a cell with a fresh flag initialised to false. Call it once
// per entity; afterwards the handle is passed around, never recreated.
func New(cells *shared.Table, p pokemon.Pokemon) State {
	return State{ID: p.ID, Pokemon: p, Flag: shared.New(cells, false)}
}

// Action is implemented by Tapped.
type Action interface {
	itemAction()
}

// Tapped is sent when the user selects the cell.
type Tapped struct{}

func (Tapped) itemAction() {}

func (Tapped) String() string { return "item.tapped" }

// Delegate is an event meant for the parent, never handled by the item itself.
type Delegate interface {
	itemDelegate()
}

// GoToDetail asks the parent to show Pokemon. Flag is the item's own handle.
type GoToDetail struct {
	Pokemon pokemon.Pokemon
	Flag    shared.Handle[bool]
}

func (GoToDetail) itemDelegate() {}

func (g GoToDetail) String() string {
	return fmt.Sprintf("item.goToDetail(%d)", g.Pokemon.ID)
}

// Reduce applies action. It never changes state and has no effects; a tap
// yields exactly one delegate event.
func Reduce(state State, action Action) (State, Delegate) {
	switch action.(type) {
	case Tapped:
		return state, GoToDetail{Pokemon: state.Pokemon, Flag: state.Flag}
	}
	return state, nil
}

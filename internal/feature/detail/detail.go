// Package detail is the reducer for the detail screen pushed from the list.
package detail

import (
	"context"
	"fmt"

	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/pokemon"
	"github.com/atomicstack/pokedex/internal/shared"
	"github.com/atomicstack/pokedex/internal/store"
)

// State is one detail screen. Flag is the handle of the list item that pushed
// the screen; the screen never owns a copy of the value.
type State struct {
	Pokemon pokemon.Pokemon
	Flag    shared.Handle[bool]

	Species          *pokemon.Species
	IsLoadingSpecies bool
	SpeciesError     error
}

// New builds the state pushed for p.
func New(p pokemon.Pokemon, flag shared.Handle[bool]) State {
	return State{Pokemon: p, Flag: flag}
}

// Flagged reads the shared flag.
func (s State) Flagged() bool {
	return s.Flag.Get()
}

// Action is implemented by OnAppear, SpeciesResult, ToggleFlag and SetFlag.
type Action interface {
	detailAction()
}

// OnAppear is sent when the screen becomes visible.
type OnAppear struct{}

// SpeciesResult completes the species fetch started by OnAppear.
type SpeciesResult struct {
	Species pokemon.Species
	Err     error
}

// ToggleFlag negates the shared flag.
type ToggleFlag struct{}

// SetFlag writes Value into the shared flag.
type SetFlag struct {
	Value bool
}

func (OnAppear) detailAction()      {}
func (SpeciesResult) detailAction() {}
func (ToggleFlag) detailAction()    {}
func (SetFlag) detailAction()       {}

func (OnAppear) String() string   { return "detail.onAppear" }
func (ToggleFlag) String() string { return "detail.toggleFlag" }
func (a SetFlag) String() string  { return fmt.Sprintf("detail.setFlag(%t)", a.Value) }

func (a SpeciesResult) String() string {
	if a.Err != nil {
		return "detail.speciesResult(failure)"
	}
	return "detail.speciesResult(success)"
}

// Env carries the collaborators the reducer's effects need.
type Env struct {
	Client pokeapi.Repository
}

// Reducer returns the detail reducer bound to env.
func Reducer(env Env) store.Reducer[State, Action] {
	return func(state State, action Action) (State, store.Effect[Action]) {
		switch a := action.(type) {
		case OnAppear:
			if state.IsLoadingSpecies || state.Species != nil || env.Client == nil {
				return state, store.None[Action]()
			}
			state.IsLoadingSpecies = true
			state.SpeciesError = nil
			id := state.Pokemon.ID
			client := env.Client
			return state, store.Run(fmt.Sprintf("fetchSpecies(%d)", id), func(ctx context.Context) Action {
				species, err := client.FetchSpecies(ctx, id)
				return SpeciesResult{Species: species, Err: err}
			})

		case SpeciesResult:
			if !state.IsLoadingSpecies {
				return state, store.None[Action]()
			}
			state.IsLoadingSpecies = false
			events.Detail.Species(state.Pokemon.ID, a.Err)
			if a.Err != nil {
				state.SpeciesError = a.Err
				return state, store.None[Action]()
			}
			species := a.Species
			state.Species = &species
			state.SpeciesError = nil
			return state, store.None[Action]()

		case ToggleFlag:
			value := state.Flag.Update(func(v bool) bool { return !v })
			events.Detail.Toggle(state.Pokemon.ID, value)
			return state, store.None[Action]()

		case SetFlag:
			state.Flag.Set(a.Value)
			events.Detail.Toggle(state.Pokemon.ID, a.Value)
			return state, store.None[Action]()
		}
		return state, store.None[Action]()
	}
}

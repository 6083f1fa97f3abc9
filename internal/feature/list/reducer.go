package list

import (
	"context"
	"fmt"
	"slices"

	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/navigation"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/shared"
	"github.com/atomicstack/pokedex/internal/store"
	"github.com/google/uuid"
)

// Env carries the collaborators the list and its children need.
type Env struct {
	Client pokeapi.Repository
	// Cells owns every item flag. Hosts never touch it directly.
	Cells *shared.Table
	// NewRequestID tags each fetch. Defaults to uuid.NewString.
	NewRequestID func() string
}

// Reducer returns the list reducer bound to env. Missing collaborators get
// defaults: a fresh cell table, uuid request IDs, and a client that fails
// every call with pokeapi.ErrUnimplemented.
func Reducer(env Env) store.Reducer[State, Action] {
	if env.Client == nil {
		env.Client = pokeapi.Funcs{}
	}
	if env.Cells == nil {
		env.Cells = shared.NewTable()
	}
	if env.NewRequestID == nil {
		env.NewRequestID = uuid.NewString
	}
	r := &reducer{
		env:    env,
		detail: detail.Reducer(detail.Env{Client: env.Client}),
	}
	return r.reduce
}

type reducer struct {
	env    Env
	detail store.Reducer[detail.State, detail.Action]
}

func (r *reducer) reduce(state State, action Action) (State, store.Effect[Action]) {
	switch a := action.(type) {
	case OnAppear:
		if state.IsLoading {
			events.List.Skip("onAppear", events.SkipLoading)
			return state, store.None[Action]()
		}
		if len(state.Items) > 0 || state.IsLoadingMore {
			events.List.Skip("onAppear", events.SkipNotEmpty)
			return state, store.None[Action]()
		}
		return r.fetch(state, Initial)

	case LoadMore:
		if !state.CanLoadMore {
			events.List.Skip("loadMore", events.SkipExhausted)
			return state, store.None[Action]()
		}
		if state.Loading() {
			events.List.Skip("loadMore", events.SkipLoading)
			return state, store.None[Action]()
		}
		return r.fetch(state, More)

	case Retry:
		if state.LastError == nil {
			events.List.Skip("retry", events.SkipNoFailure)
			return state, store.None[Action]()
		}
		if len(state.Items) == 0 {
			return r.reduce(state, OnAppear{})
		}
		return r.reduce(state, LoadMore{})

	case FetchResult:
		return r.merge(state, a)

	case SetFilter:
		state.Filter = a.Query
		events.List.Filter(a.Query, len(state.Visible()))
		return state, store.None[Action]()

	case Item:
		idx := state.indexOf(a.ID)
		if idx < 0 {
			events.List.Skip(fmt.Sprintf("item(%d)", a.ID), events.SkipUnknownRow)
			return state, store.None[Action]()
		}
		next, delegate := item.Reduce(state.Items[idx], a.Action)
		state.Items = slices.Clone(state.Items)
		state.Items[idx] = next
		if delegate == nil {
			return state, store.None[Action]()
		}
		return r.reduce(state, ItemDelegate{ID: a.ID, Delegate: delegate})

	case ItemDelegate:
		switch d := a.Delegate.(type) {
		case item.GoToDetail:
			var id navigation.ID
			state.Path, id = state.Path.Push(DetailFrame{State: detail.New(d.Pokemon, d.Flag)})
			events.Nav.Push(int(id), "detail", state.Path.Len())
		}
		return state, store.None[Action]()

	case PathAction:
		var effect store.Effect[navigation.Action[FrameAction]]
		state.Path, effect = navigation.Forward(state.Path, a.Action, r.reducePath)
		return state, store.Map(effect, func(n navigation.Action[FrameAction]) Action {
			return PathAction{Action: n}
		})
	}
	return state, store.None[Action]()
}

// reducePath routes a frame action to the reducer of the frame's variant.
// An action for a different variant leaves the frame alone.
func (r *reducer) reducePath(frame Path, action FrameAction) (Path, store.Effect[FrameAction]) {
	switch f := frame.(type) {
	case DetailFrame:
		da, ok := action.(DetailAction)
		if !ok {
			return frame, store.None[FrameAction]()
		}
		next, effect := r.detail(f.State, da.Action)
		return DetailFrame{State: next}, store.Map(effect, func(a detail.Action) FrameAction {
			return DetailAction{Action: a}
		})
	}
	return frame, store.None[FrameAction]()
}

func (r *reducer) fetch(state State, purpose Purpose) (State, store.Effect[Action]) {
	requestID := r.env.NewRequestID()
	start := state.Cursor
	count := state.PageSize
	if remaining := state.HardLimit - start + 1; remaining < count {
		count = max(remaining, 1)
	}

	switch purpose {
	case Initial:
		state.IsLoading = true
		state.PendingInitial = requestID
	case More:
		state.IsLoadingMore = true
		state.PendingMore = requestID
	}
	state.LastError = nil
	events.List.Fetch(purpose.String(), requestID, start, count)

	client := r.env.Client
	name := fmt.Sprintf("fetchRange(%d,%d)", start, count)
	return state, store.Run(name, func(ctx context.Context) Action {
		entities, err := client.FetchRange(ctx, start, count)
		return FetchResult{
			Purpose:   purpose,
			RequestID: requestID,
			Start:     start,
			Entities:  entities,
			Err:       err,
		}
	})
}

func (r *reducer) merge(state State, result FetchResult) (State, store.Effect[Action]) {
	pending := state.PendingInitial
	if result.Purpose == More {
		pending = state.PendingMore
	}
	if pending == "" || result.RequestID != pending {
		events.List.Stale(result.Purpose.String(), result.RequestID)
		return state, store.None[Action]()
	}

	switch result.Purpose {
	case Initial:
		state.IsLoading = false
		state.PendingInitial = ""
	case More:
		state.IsLoadingMore = false
		state.PendingMore = ""
	}

	if result.Err != nil {
		state.LastError = result.Err
		events.List.Failure(result.Purpose.String(), result.Err)
		return state, store.None[Action]()
	}

	items := slices.Clone(state.Items)
	appended := 0
	for _, p := range result.Entities {
		if slices.ContainsFunc(items, func(it item.State) bool { return it.ID == p.ID }) {
			events.List.Duplicate(p.ID)
			continue
		}
		items = append(items, item.New(r.env.Cells, p))
		appended++
	}
	state.Items = items
	state.Cursor = max(state.Cursor, result.Start+state.PageSize)
	state.CanLoadMore = state.Cursor < state.HardLimit
	events.List.Page(result.Purpose.String(), len(result.Entities), appended, state.Cursor, state.CanLoadMore)
	return state, store.None[Action]()
}

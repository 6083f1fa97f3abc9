package app

import (
	"context"
	"testing"

	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/store"
)

func TestRepositoryPreview(t *testing.T) {
	if _, ok := Repository(Config{Preview: true}).(pokeapi.Funcs); !ok {
		t.Fatalf("expected preview repository")
	}
	if _, ok := Repository(Config{BaseURL: "http://example.invalid"}).(*pokeapi.Client); !ok {
		t.Fatalf("expected HTTP client repository")
	}
}

func TestNewStoreAppliesLimits(t *testing.T) {
	sched := store.NewManualScheduler()
	st := NewStore(Config{PageSize: 5, HardLimit: 7}, pokeapi.Preview(), store.WithScheduler(sched))
	defer st.Close()

	state := st.State()
	if state.PageSize != 5 || state.HardLimit != 7 {
		t.Fatalf("expected limits 5/7, got %d/%d", state.PageSize, state.HardLimit)
	}

	st.Dispatch(list.OnAppear{})
	sched.RunAll()
	st.Dispatch(list.LoadMore{})
	sched.RunAll()

	state = st.State()
	if len(state.Items) != 7 {
		t.Fatalf("expected paging to stop at 7 items, got %d", len(state.Items))
	}
	if state.CanLoadMore {
		t.Fatalf("expected hard limit to end paging")
	}
}

func TestNewStoreDefaultsLimits(t *testing.T) {
	st := NewStore(Config{Preview: true}, pokeapi.Preview(), store.WithScheduler(store.NewManualScheduler()))
	defer st.Close()
	state := st.State()
	if state.PageSize != list.DefaultPageSize || state.HardLimit != list.DefaultHardLimit {
		t.Fatalf("expected default limits, got %d/%d", state.PageSize, state.HardLimit)
	}
}

func TestNewStoreHonoursParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sched := store.NewManualScheduler()
	st := NewStore(Config{PageSize: 5, HardLimit: 10}, pokeapi.Preview(), store.WithScheduler(sched), store.WithContext(ctx))
	defer st.Close()

	st.Dispatch(list.OnAppear{})
	cancel()
	sched.RunAll()

	if got := len(st.State().Items); got != 0 {
		t.Fatalf("expected cancelled fetch to be dropped, got %d items", got)
	}
}

package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/pokemon"
	"github.com/atomicstack/pokedex/internal/shared"
	"github.com/atomicstack/pokedex/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

type testEnv struct {
	scheduler *store.ManualScheduler
	store     *store.Store[list.State, list.Action]
	harness   *Harness
}

func newTestEnv(t *testing.T, client pokeapi.Repository, opts Options) *testEnv {
	t.Helper()
	sched := store.NewManualScheduler()
	st := store.New(list.NewState(), list.Reducer(list.Env{Client: client}), store.WithScheduler(sched))
	model := NewModel(st, opts)
	t.Cleanup(func() {
		model.Close()
		st.Close()
	})
	return &testEnv{scheduler: sched, store: st, harness: NewHarness(model)}
}

// settle runs every queued effect and lets the model pick up the result.
func (e *testEnv) settle() {
	e.scheduler.RunAll()
	e.harness.Sync()
}

func (e *testEnv) loadFirstPage(t *testing.T) {
	t.Helper()
	e.harness.Send(appearMsg{})
	e.settle()
	if got := len(e.harness.Model().State().Items); got != list.DefaultPageSize {
		t.Fatalf("expected %d items after first page, got %d", list.DefaultPageSize, got)
	}
}

func TestAppearLoadsFirstPage(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 60})
	env.harness.Send(appearMsg{})

	if !env.harness.Model().State().IsLoading {
		t.Fatalf("expected initial load in flight")
	}
	if view := env.harness.View(); !strings.Contains(view, "Loading…") {
		t.Fatalf("expected loading indicator, got:\n%s", view)
	}
	if pending := env.scheduler.Pending(); len(pending) != 1 || pending[0] != "fetchRange(1,20)" {
		t.Fatalf("unexpected pending effects %v", pending)
	}

	env.settle()
	view := env.harness.View()
	if !strings.Contains(view, "#0001 Bulbasaur") || !strings.Contains(view, "#0020 Bulbasaur") {
		t.Fatalf("expected first page rendered, got:\n%s", view)
	}
	if !strings.Contains(view, "20 loaded") {
		t.Fatalf("expected header count, got:\n%s", view)
	}
}

func TestAppearTwiceKeepsSingleFetch(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{})
	env.harness.Send(appearMsg{})
	env.harness.Send(appearMsg{})
	if pending := env.scheduler.Pending(); len(pending) != 1 {
		t.Fatalf("expected one fetch, got %v", pending)
	}
}

func TestEnterOpensDetailAndLoadsSpecies(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 80})
	env.loadFirstPage(t)

	env.harness.Key("down")
	env.harness.Key("enter")

	id, frame, ok := env.harness.Model().State().Detail()
	if !ok {
		t.Fatalf("expected detail frame after enter")
	}
	if frame.Pokemon.ID != 2 {
		t.Fatalf("expected detail for #2, got #%d", frame.Pokemon.ID)
	}
	if !frame.IsLoadingSpecies {
		t.Fatalf("expected species fetch to start when the frame appears")
	}
	if env.harness.Model().appeared != id {
		t.Fatalf("expected frame %d marked as appeared, got %d", id, env.harness.Model().appeared)
	}
	if view := env.harness.View(); !strings.Contains(view, "Loading species…") {
		t.Fatalf("expected species loading line, got:\n%s", view)
	}

	env.settle()
	view := env.harness.View()
	if !strings.Contains(view, "フシギダネ") {
		t.Fatalf("expected localized name, got:\n%s", view)
	}
	if !strings.Contains(view, "hp") || !strings.Contains(view, "total") {
		t.Fatalf("expected stats table, got:\n%s", view)
	}
}

func TestFlagToggleShowsInList(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 80})
	env.loadFirstPage(t)

	env.harness.Key("enter")
	env.settle()
	if view := env.harness.View(); !strings.Contains(view, "#0001 Bulbasaur  "+flagOff) {
		t.Fatalf("expected unflagged title, got:\n%s", view)
	}

	env.harness.Key("f")
	if view := env.harness.View(); !strings.Contains(view, "#0001 Bulbasaur  "+flagOn) {
		t.Fatalf("expected flagged title, got:\n%s", view)
	}

	env.harness.Key("esc")
	state := env.harness.Model().State()
	if state.Path.Len() != 0 {
		t.Fatalf("expected list after esc, stack has %d frames", state.Path.Len())
	}
	if !state.Items[0].Flag.Get() {
		t.Fatalf("expected list item to observe the shared flag")
	}
	if view := env.harness.View(); !strings.Contains(view, "#0001 Bulbasaur "+flagOn) {
		t.Fatalf("expected flag mark in list row, got:\n%s", view)
	}
}

func TestReopenedDetailAppearsAgain(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{})
	env.loadFirstPage(t)

	env.harness.Key("enter")
	first, _, _ := env.harness.Model().State().Detail()
	env.settle()
	env.harness.Key("esc")
	env.harness.Key("enter")

	second, frame, ok := env.harness.Model().State().Detail()
	if !ok || second == first {
		t.Fatalf("expected a fresh frame id, got %d after %d", second, first)
	}
	if !frame.IsLoadingSpecies {
		t.Fatalf("expected the new frame to fetch species")
	}
}

func TestNearEndRequestsNextPage(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{})
	env.loadFirstPage(t)

	for i := 0; i < 16; i++ {
		env.harness.Key("down")
	}
	if env.harness.Model().State().IsLoadingMore {
		t.Fatalf("did not expect paging before the last rows")
	}
	env.harness.Key("down")
	if !env.harness.Model().State().IsLoadingMore {
		t.Fatalf("expected load more once the cursor is near the end")
	}
	if pending := env.scheduler.Pending(); len(pending) != 1 || pending[0] != "fetchRange(21,20)" {
		t.Fatalf("unexpected pending effects %v", pending)
	}
	if view := env.harness.View(); !strings.Contains(view, "Loading more…") {
		t.Fatalf("expected paging indicator, got:\n%s", view)
	}

	env.harness.Key("down")
	if pending := env.scheduler.Pending(); len(pending) != 1 {
		t.Fatalf("expected no second fetch while loading, got %v", pending)
	}

	env.settle()
	if got := len(env.harness.Model().State().Items); got != 40 {
		t.Fatalf("expected 40 items, got %d", got)
	}
}

// laggingEngine records dispatched actions and publishes only when told to,
// like a store whose transitions land on another goroutine.
type laggingEngine struct {
	mu      sync.Mutex
	actions []list.Action
	publish func(list.State)
}

func (e *laggingEngine) Dispatch(action list.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = append(e.actions, action)
}

func (e *laggingEngine) Subscribe(fn func(list.State)) func() {
	e.publish = fn
	return func() {}
}

func (e *laggingEngine) loadMoreCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, a := range e.actions {
		if _, ok := a.(list.LoadMore); ok {
			n++
		}
	}
	return n
}

func pagedState(cells *shared.Table, loaded int) list.State {
	st := list.NewState()
	for _, p := range pokemon.MockRange(1, loaded) {
		st.Items = append(st.Items, item.New(cells, p))
	}
	st.Cursor = loaded + 1
	return st
}

func TestStaleStateSendsOneLoadMorePerCursor(t *testing.T) {
	cells := shared.NewTable()
	engine := &laggingEngine{}
	model := NewModel(engine, Options{})
	defer model.Close()
	h := NewHarness(model)

	engine.publish(pagedState(cells, 20))
	h.Sync()
	for i := 0; i < 19; i++ {
		h.Key("down")
	}
	if got := engine.loadMoreCount(); got != 1 {
		t.Fatalf("expected one LoadMore for cursor 21, got %d", got)
	}

	engine.publish(pagedState(cells, 40))
	h.Sync()
	for i := 0; i < 19; i++ {
		h.Key("down")
	}
	if got := engine.loadMoreCount(); got != 2 {
		t.Fatalf("expected a second LoadMore once the cursor advanced, got %d", got)
	}
}

func TestShortScreenFillsWithPages(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 40, Height: 30})
	env.loadFirstPage(t)

	// 20 rows do not fill a 30 line screen, so another page is requested.
	if !env.harness.Model().State().IsLoadingMore {
		t.Fatalf("expected a second page to fill the screen")
	}
	env.settle()
	if env.harness.Model().State().IsLoadingMore {
		t.Fatalf("expected paging to stop once the screen is full")
	}
	if got := len(env.harness.Model().State().Items); got != 40 {
		t.Fatalf("expected 40 items, got %d", got)
	}
	if lines := strings.Count(env.harness.View(), "\n") + 1; lines > 30 {
		t.Fatalf("expected view to fit 30 lines, got %d", lines)
	}
}

func TestRetryAfterFailure(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	client := pokeapi.Funcs{
		FetchRangeFunc: func(ctx context.Context, start, count int) ([]pokemon.Pokemon, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls == 1 {
				return nil, &pokeapi.NetworkError{URL: "/p", StatusCode: 503, Err: errors.New("unavailable")}
			}
			return pokemon.MockRange(start, start+count-1), nil
		},
	}
	env := newTestEnv(t, client, Options{Width: 80})
	env.harness.Send(appearMsg{})
	env.settle()

	view := env.harness.View()
	if !strings.Contains(view, "Error:") || !strings.Contains(view, "r to retry") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
	if env.harness.Model().State().LastError == nil {
		t.Fatalf("expected LastError to be recorded")
	}

	env.harness.Key("r")
	if !env.harness.Model().State().IsLoading {
		t.Fatalf("expected retry to restart the initial load")
	}
	env.settle()
	if got := len(env.harness.Model().State().Items); got != list.DefaultPageSize {
		t.Fatalf("expected first page after retry, got %d items", got)
	}
	if view := env.harness.View(); strings.Contains(view, "Error:") {
		t.Fatalf("expected error cleared, got:\n%s", view)
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 60})
	env.loadFirstPage(t)

	env.harness.Key("/")
	if !env.harness.Model().filtering {
		t.Fatalf("expected filter mode")
	}
	for _, r := range []string{"0", "0", "4"} {
		env.harness.Key(r)
	}
	state := env.harness.Model().State()
	if state.Filter != "004" {
		t.Fatalf("expected filter 004, got %q", state.Filter)
	}
	rows := state.Visible()
	if len(rows) != 1 || rows[0].ID != 4 {
		t.Fatalf("expected only #4 visible, got %d rows", len(rows))
	}
	if view := env.harness.View(); !strings.Contains(view, "1 shown") {
		t.Fatalf("expected shown count, got:\n%s", view)
	}

	env.harness.Key("enter")
	if env.harness.Model().filtering {
		t.Fatalf("expected enter to leave filter mode")
	}
	if got := env.harness.Model().State().Filter; got != "004" {
		t.Fatalf("expected filter kept after enter, got %q", got)
	}

	env.harness.Key("esc")
	if got := env.harness.Model().State().Filter; got != "" {
		t.Fatalf("expected esc to clear filter, got %q", got)
	}
	if got := len(env.harness.Model().State().Visible()); got != list.DefaultPageSize {
		t.Fatalf("expected all rows visible again, got %d", got)
	}
}

func TestFilterWithoutMatches(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 60})
	env.loadFirstPage(t)

	env.harness.Key("/")
	env.harness.Key("xyz")
	if view := env.harness.View(); !strings.Contains(view, `No matches for "xyz"`) {
		t.Fatalf("expected no matches line, got:\n%s", view)
	}
	env.harness.Key("ctrl+u")
	if got := env.harness.Model().State().Filter; got != "" {
		t.Fatalf("expected ctrl+u to empty the filter, got %q", got)
	}
	if !env.harness.Model().filtering {
		t.Fatalf("expected ctrl+u to keep filter mode open")
	}
}

func TestFilteredListDoesNotPage(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{})
	env.loadFirstPage(t)

	env.harness.Key("/")
	env.harness.Key("4")
	env.harness.Key("enter")
	env.harness.Key("down")
	if env.harness.Model().State().IsLoadingMore {
		t.Fatalf("expected no paging while a filter is active")
	}
}

func TestHelpToggle(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 120})
	env.loadFirstPage(t)

	if view := env.harness.View(); strings.Contains(view, "page down") {
		t.Fatalf("did not expect full help by default, got:\n%s", view)
	}
	env.harness.Key("?")
	if view := env.harness.View(); !strings.Contains(view, "page down") {
		t.Fatalf("expected full help after ?, got:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{})
	for _, name := range []string{"q", "ctrl+c"} {
		_, cmd := env.harness.Model().Update(keyMsg(name))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", name)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", name)
		}
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 50})
	env.harness.Send(tea.WindowSizeMsg{Width: 100, Height: 12})
	m := env.harness.Model()
	if m.width != 50 {
		t.Fatalf("expected fixed width 50, got %d", m.width)
	}
	if m.height != 12 {
		t.Fatalf("expected height from terminal, got %d", m.height)
	}
}

func TestStateFeedCoalescesAndCloses(t *testing.T) {
	sched := store.NewManualScheduler()
	st := store.New(list.NewState(), list.Reducer(list.Env{Client: pokeapi.Preview()}), store.WithScheduler(sched))
	defer st.Close()

	feed := newStateFeed(st)
	st.Dispatch(list.OnAppear{})
	st.Dispatch(list.SetFilter{Query: "bulba"})

	if msg := waitForState(feed)(); msg != (stateChangedMsg{}) {
		t.Fatalf("expected stateChangedMsg, got %T", msg)
	}
	if got := feed.Latest().Filter; got != "bulba" {
		t.Fatalf("expected latest publication, got filter %q", got)
	}

	feed.Close()
	if msg := waitForState(feed)(); msg != (feedClosedMsg{}) {
		t.Fatalf("expected feedClosedMsg after close, got %T", msg)
	}
	st.Dispatch(list.SetFilter{Query: "ivy"})
	if got := feed.Latest().Filter; got != "bulba" {
		t.Fatalf("expected closed feed to ignore publications, got %q", got)
	}
}

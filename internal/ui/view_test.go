package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/store"
	"github.com/atomicstack/pokedex/internal/testutil"
	"github.com/charmbracelet/x/ansi"
)

func TestViewListAtHardLimit(t *testing.T) {
	sched := store.NewManualScheduler()
	st := store.New(list.NewStateWithLimits(3, 3), list.Reducer(list.Env{Client: pokeapi.Preview()}), store.WithScheduler(sched))
	defer st.Close()
	model := NewModel(st, Options{Width: 30})
	defer model.Close()
	h := NewHarness(model)

	h.Send(appearMsg{})
	sched.RunAll()
	h.Sync()

	testutil.AssertGolden(t, "list_end.golden", testutil.Screen(h.View()))
}

func TestViewRowsFitWidth(t *testing.T) {
	env := newTestEnv(t, pokeapi.Preview(), Options{Width: 12})
	env.loadFirstPage(t)
	for i, line := range strings.Split(env.harness.View(), "\n") {
		if w := ansi.StringWidth(line); w > 12 {
			t.Fatalf("line %d is %d cells wide: %q", i, w, line)
		}
	}
}

func TestViewDetailSpeciesError(t *testing.T) {
	client := pokeapi.Preview()
	client.FetchSpeciesFunc = nil
	env := newTestEnv(t, client, Options{Width: 100})
	env.loadFirstPage(t)

	env.harness.Key("enter")
	env.settle()
	view := testutil.Screen(env.harness.View())
	if !strings.Contains(view, "Error:") || !strings.Contains(view, "unimplemented") {
		t.Fatalf("expected species error, got:\n%s", view)
	}
	if !strings.Contains(view, "Height    4.0 m") {
		t.Fatalf("expected facts table, got:\n%s", view)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("Bulbasaur", 5); got != "Bulb…" {
		t.Fatalf("expected Bulb…, got %q", got)
	}
	if got := truncateText("Bulbasaur", 0); got != "Bulbasaur" {
		t.Fatalf("expected unbounded width to keep text, got %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	got := limitHeight(lines, 2, 10)
	if len(got) != 2 || got[0].text != "a" || got[1].text != "…" {
		t.Fatalf("unexpected lines %#v", got)
	}
	if got := limitHeight(lines, 0, 10); len(got) != 3 {
		t.Fatalf("expected no limit, got %d lines", len(got))
	}
}

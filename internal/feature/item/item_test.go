package item

import (
	"testing"

	"github.com/atomicstack/pokedex/internal/pokemon"
	"github.com/atomicstack/pokedex/internal/shared"
)

func TestNewStartsUnflagged(t *testing.T) {
	cells := shared.NewTable()
	st := New(cells, pokemon.Mock(4))
	if st.ID != 4 || st.Pokemon.ID != 4 {
		t.Fatalf("expected id 4, got %d/%d", st.ID, st.Pokemon.ID)
	}
	if !st.Flag.Valid() || st.Flag.Get() {
		t.Fatalf("expected a valid false flag, got %s", st.Flag)
	}
	if cells.Len() != 1 {
		t.Fatalf("expected one cell, got %d", cells.Len())
	}
}

func TestTappedDelegatesWithSameHandle(t *testing.T) {
	cells := shared.NewTable()
	st := New(cells, pokemon.Mock(7))

	next, delegate := Reduce(st, Tapped{})
	if next.ID != st.ID || !next.Flag.Equal(st.Flag) {
		t.Fatalf("expected state unchanged")
	}
	got, ok := delegate.(GoToDetail)
	if !ok {
		t.Fatalf("expected GoToDetail, got %T", delegate)
	}
	if got.Pokemon.ID != 7 {
		t.Fatalf("expected entity 7, got %d", got.Pokemon.ID)
	}
	if !got.Flag.Equal(st.Flag) {
		t.Fatalf("expected delegate to carry the item's own handle")
	}
	if cells.Len() != 1 {
		t.Fatalf("expected no new cell, got %d", cells.Len())
	}
	got.Flag.Set(true)
	if !st.Flag.Get() {
		t.Fatalf("expected write through delegate handle to be visible to the item")
	}
}

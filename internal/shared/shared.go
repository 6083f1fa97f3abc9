// Package shared holds values that several independently composed state trees
// observe and mutate without any of them owning the value.
//
// A Table is the single owner of every cell. State structs keep a Handle, which
// is only the cell's identifier plus a reference to the owning table, so copying
// a state struct copies the handle and never the value behind it. Writes through
// any handle are visible to every other holder of a handle for the same cell.
package shared

import (
	"fmt"
	"sync"
)

// Table owns shared cells. The zero value is not usable; call NewTable.
type Table struct {
	mu    sync.RWMutex
	next  uint64
	cells map[uint64]any
}

// NewTable returns an empty cell table.
func NewTable() *Table {
	return &Table{cells: make(map[uint64]any)}
}

// Len reports how many cells have been created.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cells)
}

func (t *Table) create(v any) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.cells[t.next] = v
	return t.next
}

func (t *Table) load(id uint64) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.cells[id]
	return v, ok
}

func (t *Table) store(id uint64, v any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.cells[id]; !ok {
		return false
	}
	t.cells[id] = v
	return true
}

// Handle addresses one cell in a Table. Handles are small values and are meant
// to be copied freely; two handles are Equal when they address the same cell.
type Handle[T any] struct {
	table *Table
	id    uint64
}

// New creates a cell holding initial and returns a handle to it.
func New[T any](t *Table, initial T) Handle[T] {
	if t == nil {
		panic("shared: New called with nil table")
	}
	return Handle[T]{table: t, id: t.create(initial)}
}

// ID returns the cell identifier. Zero means the handle is unset.
func (h Handle[T]) ID() uint64 {
	return h.id
}

// Valid reports whether the handle addresses a cell.
func (h Handle[T]) Valid() bool {
	return h.table != nil && h.id != 0
}

// Get reads the current value. An unset handle reads the zero value.
func (h Handle[T]) Get() T {
	var zero T
	if !h.Valid() {
		return zero
	}
	v, ok := h.table.load(h.id)
	if !ok {
		return zero
	}
	typed, ok := v.(T)
	if !ok {
		return zero
	}
	return typed
}

// Set writes v into the cell. Writes through an unset handle are dropped.
func (h Handle[T]) Set(v T) {
	if !h.Valid() {
		return
	}
	h.table.store(h.id, v)
}

// Update applies fn to the current value under the table lock and stores the
// result, returning it.
func (h Handle[T]) Update(fn func(T) T) T {
	var zero T
	if !h.Valid() {
		return zero
	}
	h.table.mu.Lock()
	defer h.table.mu.Unlock()
	cur, _ := h.table.cells[h.id].(T)
	next := fn(cur)
	h.table.cells[h.id] = next
	return next
}

// Equal reports whether both handles address the same cell. go-cmp picks this
// method up, so states holding handles compare by identity of the cell.
func (h Handle[T]) Equal(other Handle[T]) bool {
	return h.table == other.table && h.id == other.id
}

func (h Handle[T]) String() string {
	if !h.Valid() {
		return "shared.Handle(unset)"
	}
	return fmt.Sprintf("shared.Handle(%d=%v)", h.id, h.Get())
}

// Package list is the root reducer: the paginated collection, its cells and
// the navigation stack of screens pushed from them.
package list

import (
	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/navigation"
)

const (
	DefaultPageSize  = 20
	DefaultHardLimit = 1302
)

// Purpose tells an initial fetch from a load-more fetch.
type Purpose int

const (
	Initial Purpose = iota
	More
)

func (p Purpose) String() string {
	if p == More {
		return "more"
	}
	return "initial"
}

// State is the list screen.
//
// Items are unique by ID and kept in first-seen order. At most one of
// IsLoading and IsLoadingMore is true, and only while the matching request
// (PendingInitial or PendingMore) is outstanding.
type State struct {
	Items         []item.State
	IsLoading     bool
	IsLoadingMore bool
	CanLoadMore   bool
	Cursor        int
	PageSize      int
	HardLimit     int
	Path          navigation.Stack[Path]

	Filter    string
	LastError error

	PendingInitial string
	PendingMore    string
}

// NewState returns the state at mount time.
func NewState() State {
	return NewStateWithLimits(DefaultPageSize, DefaultHardLimit)
}

// NewStateWithLimits overrides the page size and hard limit. Non-positive
// values fall back to the defaults.
func NewStateWithLimits(pageSize, hardLimit int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if hardLimit <= 0 {
		hardLimit = DefaultHardLimit
	}
	return State{
		CanLoadMore: true,
		Cursor:      1,
		PageSize:    pageSize,
		HardLimit:   hardLimit,
	}
}

// Item returns the cell with the given id.
func (s State) Item(id int) (item.State, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return item.State{}, false
}

func (s State) indexOf(id int) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Loading reports whether any page fetch is outstanding.
func (s State) Loading() bool {
	return s.IsLoading || s.IsLoadingMore
}

// Path is a frame on the navigation stack. DetailFrame is the only variant;
// new screens add a type here and a case in reducePath.
type Path interface {
	pathKind() string
}

// DetailFrame is a pushed detail screen.
type DetailFrame struct {
	State detail.State
}

func (DetailFrame) pathKind() string { return "detail" }

// Detail returns the detail state of the top frame, if the top is a detail.
func (s State) Detail() (navigation.ID, detail.State, bool) {
	id, top, ok := s.Path.Top()
	if !ok {
		return 0, detail.State{}, false
	}
	frame, ok := top.(DetailFrame)
	if !ok {
		return 0, detail.State{}, false
	}
	return id, frame.State, true
}

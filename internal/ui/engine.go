package ui

import (
	"sync"

	"github.com/atomicstack/pokedex/internal/feature/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Engine is the whole surface the UI may use. *store.Store[list.State,
// list.Action] satisfies it.
type Engine interface {
	Dispatch(action list.Action)
	Subscribe(fn func(list.State)) (unsubscribe func())
}

// stateFeed keeps the latest published state and wakes the program when a
// publication arrives from outside Update, e.g. a fetch completing.
type stateFeed struct {
	mu          sync.Mutex
	latest      list.State
	closed      bool
	notify      chan struct{}
	unsubscribe func()
}

func newStateFeed(engine Engine) *stateFeed {
	f := &stateFeed{notify: make(chan struct{}, 1)}
	f.unsubscribe = engine.Subscribe(f.publish)
	return f
}

func (f *stateFeed) publish(state list.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.latest = state
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Latest returns the most recent publication.
func (f *stateFeed) Latest() list.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// Close stops the subscription. Pending waits return feedClosedMsg.
func (f *stateFeed) Close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.notify)
}

type stateChangedMsg struct{}

type feedClosedMsg struct{}

type appearMsg struct{}

func waitForState(f *stateFeed) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-f.notify; !ok {
			return feedClosedMsg{}
		}
		return stateChangedMsg{}
	}
}

func (m *Model) handleStateChangedMsg(msg tea.Msg) tea.Cmd {
	cmd := m.refresh()
	if m.watching {
		return tea.Batch(cmd, waitForState(m.feed))
	}
	return cmd
}

func (m *Model) handleFeedClosedMsg(msg tea.Msg) tea.Cmd {
	m.watching = false
	return nil
}

func (m *Model) handleAppearMsg(msg tea.Msg) tea.Cmd {
	return m.dispatch(list.OnAppear{})
}

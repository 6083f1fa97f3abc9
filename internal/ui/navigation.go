package ui

import (
	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// nearEndRows is how close to the last row the cursor may get before the next
// page is requested.
const nearEndRows = 3

func (m *Model) screen() string {
	if m.state.Path.Len() > 0 {
		return "detail"
	}
	return "list"
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(m.screen(), keyMsg.String())
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.filtering {
		return m.handleFilterKey(keyMsg)
	}
	if key.Matches(keyMsg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if m.state.Path.Len() > 0 {
		return m.handleDetailKey(keyMsg)
	}
	return m.handleListKey(keyMsg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.moveCursor(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		return m.moveCursor(m.pageRows())
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.Filter):
		return m.openFilter()
	case key.Matches(msg, m.keys.Retry):
		return m.dispatch(list.Retry{})
	case msg.Type == tea.KeyEsc && m.state.Filter != "":
		return m.clearFilter()
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Flag):
		return m.dispatch(list.ToTop(m.state, detail.ToggleFlag{}))
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(list.Back())
	case key.Matches(msg, m.keys.Retry):
		// a failed species load is retried by appearing again
		if _, frame, ok := m.state.Detail(); ok && frame.SpeciesError != nil {
			return m.dispatch(list.ToTop(m.state, detail.OnAppear{}))
		}
	}
	return nil
}

func (m *Model) visible() []item.State {
	return m.state.Visible()
}

func (m *Model) selected() (item.State, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return item.State{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) openSelected() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	return m.dispatch(list.Tap(it.ID))
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	rows := len(m.visible())
	if rows == 0 {
		return nil
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= rows {
		next = rows - 1
	}
	if next == m.cursor {
		return m.maybeLoadMore()
	}
	m.cursor = next
	events.UI.Cursor(m.cursor)
	m.syncViewport()
	return m.maybeLoadMore()
}

func (m *Model) clampCursor() {
	rows := len(m.visible())
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// syncViewport scrolls so the cursor row is on screen.
func (m *Model) syncViewport() {
	rows := m.maxVisibleItems()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	total := len(m.visible())
	if m.offset > total-rows {
		m.offset = total - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) pageRows() int {
	if rows := m.maxVisibleItems(); rows > 1 {
		return rows - 1
	}
	return 1
}

// maybeLoadMore requests the next page when the cursor is near the end of an
// unfiltered list, or when the loaded rows do not fill the screen yet. At most
// one request is sent per pagination cursor.
func (m *Model) maybeLoadMore() tea.Cmd {
	st := m.state
	if len(st.Items) == 0 || st.Path.Len() > 0 || st.Filter != "" {
		return nil
	}
	if !st.CanLoadMore || st.Loading() || st.LastError != nil {
		return nil
	}
	if st.Cursor == m.requestedFrom {
		return nil
	}
	total := len(st.Items)
	nearEnd := m.cursor >= total-nearEndRows
	if rows := m.maxVisibleItems(); rows > 0 && total < rows {
		nearEnd = true
	}
	if !nearEnd {
		return nil
	}
	events.UI.NearEnd(m.cursor, total)
	m.requestedFrom = st.Cursor
	return m.dispatch(list.LoadMore{})
}

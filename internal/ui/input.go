package ui

import (
	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openFilter() tea.Cmd {
	m.filtering = true
	m.filterInput.SetValue(m.state.Filter)
	m.filterInput.CursorEnd()
	events.Filter.Open()
	return m.filterInput.Focus()
}

func (m *Model) closeFilter() {
	m.filtering = false
	m.filterInput.Blur()
}

func (m *Model) clearFilter() tea.Cmd {
	m.closeFilter()
	m.filterInput.SetValue("")
	events.Filter.Cleared()
	m.cursor = 0
	return m.dispatch(list.SetFilter{})
}

// handleFilterKey edits the filter. Every edit is sent to the engine as a
// SetFilter so the visible rows always come from published state.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.closeFilter()
		events.Filter.Submit(m.state.Filter)
		return nil
	case tea.KeyEsc:
		return m.clearFilter()
	case tea.KeyCtrlU:
		if m.filterInput.Value() == "" {
			return nil
		}
		m.filterInput.SetValue("")
		m.cursor = 0
		return m.dispatch(list.SetFilter{})
	}
	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if after := m.filterInput.Value(); after != before {
		m.cursor = 0
		return tea.Batch(cmd, m.dispatch(list.SetFilter{Query: after}))
	}
	return cmd
}

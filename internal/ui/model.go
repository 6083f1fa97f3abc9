package ui

import (
	"reflect"

	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/navigation"
	"github.com/atomicstack/pokedex/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure the host model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
}

// Model implements the Bubble Tea model for the browser.
type Model struct {
	engine   Engine
	feed     *stateFeed
	state    list.State
	watching bool

	cursor   int
	offset   int
	appeared navigation.ID
	// requestedFrom is the pagination cursor the last LoadMore was sent for.
	requestedFrom int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	filtering   bool
	filterInput textinput.Model
	spinner     spinner.Model
	spinning    bool
	keys        keyMap
	help        help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel subscribes to engine and prepares the UI.
func NewModel(engine Engine, opts Options) *Model {
	m := &Model{
		engine:     engine,
		feed:       newStateFeed(engine),
		showFooter: opts.ShowFooter,
		keys:       newKeyMap(),
		help:       help.New(),
	}
	m.state = m.feed.Latest()
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "name or number"
	ti.CharLimit = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	m.filterInput = ti

	s := spinner.New()
	s.Spinner = spinner.Dot
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spinner = s

	if styles.Footer != nil {
		m.help.Styles.ShortDesc = *styles.Footer
		m.help.Styles.FullDesc = *styles.Footer
	}

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.watching = true
	return tea.Batch(
		waitForState(m.feed),
		func() tea.Msg { return appearMsg{} },
	)
}

// Close releases the engine subscription.
func (m *Model) Close() {
	m.feed.Close()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	if m.filtering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(stateChangedMsg{}):   m.handleStateChangedMsg,
		reflect.TypeOf(feedClosedMsg{}):     m.handleFeedClosedMsg,
		reflect.TypeOf(appearMsg{}):         m.handleAppearMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// dispatch hands action to the engine and picks up the state it published.
func (m *Model) dispatch(action list.Action) tea.Cmd {
	if action == nil {
		return nil
	}
	m.engine.Dispatch(action)
	return m.refresh()
}

// refresh adopts the latest published state, sends OnAppear to a newly pushed
// detail frame and starts the spinner when something is loading.
func (m *Model) refresh() tea.Cmd {
	m.state = m.feed.Latest()
	m.clampCursor()

	var cmds []tea.Cmd
	if id, _, ok := m.state.Detail(); ok && id != m.appeared {
		m.appeared = id
		cmds = append(cmds, m.dispatch(list.ToFrame(id, detail.OnAppear{})))
	}
	if cmd := m.maybeLoadMore(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) busy() bool {
	if m.state.Loading() {
		return true
	}
	_, frame, ok := m.state.Detail()
	return ok && frame.IsLoadingSpecies
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return m.maybeLoadMore()
}

// State returns the state the model last rendered from.
func (m *Model) State() list.State {
	return m.state
}

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/pokedex/internal/feature/detail"
	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/atomicstack/pokedex/internal/format/table"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	flagOn       = "★"
	flagOff      = "☆"
	statBarWidth = 20
	statBarLimit = 255
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text already carries ANSI escapes
}

// View implements tea.Model.
func (m *Model) View() string {
	if _, frame, ok := m.state.Detail(); ok {
		return m.viewDetail(frame)
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	st := m.state
	rows := m.visible()
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: m.listHeader(), style: styles.Header})

	switch {
	case st.IsLoading && len(st.Items) == 0:
		lines = append(lines, styledLine{text: m.spinner.View() + " Loading…", raw: true})
	case len(rows) == 0 && st.Filter != "":
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", st.Filter), style: styles.Info})
	case len(rows) == 0:
		lines = append(lines, styledLine{text: "(no entries)", style: styles.Info})
	default:
		start, end := m.offset, len(rows)
		if maxRows := m.maxVisibleItems(); maxRows > 0 && end-start > maxRows {
			end = start + maxRows
		}
		for i := start; i < end; i++ {
			lines = append(lines, m.buildItemLine(rows[i], i == m.cursor))
		}
	}

	if status, ok := m.listStatus(); ok {
		lines = append(lines, status)
	}
	lines = append(lines, m.helpLines(m.keys.listHelp())...)
	lines = limitHeight(lines, m.height-1, m.width)
	lines = append(lines, m.filterLine())
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) listHeader() string {
	st := m.state
	header := fmt.Sprintf("Pokédex  %d loaded", len(st.Items))
	if st.Filter != "" {
		header += fmt.Sprintf("  %d shown", len(m.visible()))
	}
	if !st.CanLoadMore {
		header += "  (end)"
	}
	return header
}

// listStatus is the row under the items: paging progress or the last error.
func (m *Model) listStatus() (styledLine, bool) {
	st := m.state
	switch {
	case st.IsLoadingMore:
		return styledLine{text: m.spinner.View() + " Loading more…", raw: true}, true
	case st.LastError != nil:
		return styledLine{text: fmt.Sprintf("Error: %v (r to retry)", st.LastError), style: styles.Error}, true
	}
	return styledLine{}, false
}

func (m *Model) filterLine() styledLine {
	if m.filtering {
		return styledLine{text: m.filterInput.View(), raw: true}
	}
	if m.state.Filter != "" {
		return styledLine{text: "/" + m.state.Filter, style: styles.FilterPrompt}
	}
	return styledLine{}
}

// helpLines renders the key help: the short form for the current screen, or
// every binding once "?" has been pressed.
func (m *Model) helpLines(bindings []key.Binding) []styledLine {
	if !m.showFooter && !m.help.ShowAll {
		return nil
	}
	text := m.help.ShortHelpView(bindings)
	if m.help.ShowAll {
		text = m.help.FullHelpView(m.keys.fullHelp())
	}
	lines := []styledLine{{}}
	for _, row := range strings.Split(text, "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	return lines
}

// buildItemLine constructs a single styledLine for a list row.
func (m *Model) buildItemLine(it item.State, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := "▌ " + it.Pokemon.DisplayName()
	if it.Flag.Get() {
		text += " " + flagOn
	}
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) viewDetail(frame detail.State) string {
	p := frame.Pokemon
	lines := make([]styledLine, 0, 32)

	mark := flagOff
	if frame.Flagged() {
		mark = flagOn
	}
	lines = append(lines, styledLine{text: p.DisplayName() + "  " + mark, style: styles.DetailTitle})
	if frame.Species != nil {
		if name, ok := frame.Species.LocalizedName("ja"); ok {
			lines = append(lines, styledLine{text: name, style: styles.DetailLabel})
		}
	}
	lines = append(lines, styledLine{})

	sprite := "(none)"
	if p.HasSprite() {
		sprite = p.Sprites.FrontDefault
	}
	facts := table.Format([][]string{
		{"Height", fmt.Sprintf("%.1f m", float64(p.Height)/10)},
		{"Weight", fmt.Sprintf("%.1f kg", float64(p.Weight)/10)},
		{"Base exp", strconv.Itoa(p.BaseExperience)},
		{"Order", strconv.Itoa(p.Order)},
		{"Sprite", sprite},
	}, nil)
	for _, f := range facts {
		lines = append(lines, styledLine{text: f, style: styles.DetailBody})
	}

	if len(p.Stats) > 0 {
		lines = append(lines, styledLine{})
		rows := make([][]string, 0, len(p.Stats)+1)
		for _, s := range p.Stats {
			rows = append(rows, []string{
				s.Stat.Name,
				strconv.Itoa(s.BaseStat),
				table.Bar(s.BaseStat, statBarLimit, statBarWidth),
			})
		}
		rows = append(rows, []string{"total", strconv.Itoa(p.TotalBaseStats()), ""})
		for _, row := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}) {
			lines = append(lines, styledLine{text: row, style: styles.StatBar})
		}
	}

	lines = append(lines, styledLine{})
	switch {
	case frame.IsLoadingSpecies:
		lines = append(lines, styledLine{text: m.spinner.View() + " Loading species…", raw: true})
	case frame.SpeciesError != nil:
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %v (r to retry)", frame.SpeciesError), style: styles.Error})
	case frame.Species != nil:
		if text, ok := frame.Species.FlavorText(""); ok {
			for _, row := range strings.Split(m.renderPanel(text), "\n") {
				lines = append(lines, styledLine{text: row, raw: true})
			}
		}
	}

	lines = append(lines, m.helpLines(m.keys.detailHelp())...)
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) renderPanel(text string) string {
	width := 60
	if m.width > 0 {
		width = m.width - 2
	}
	width = max(width, 10)
	return styles.Panel.Width(width).Render(text)
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // header + filter prompt
	if _, ok := m.listStatus(); ok {
		used++
	}
	used += len(m.helpLines(m.keys.listHelp()))
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width cells, keeping escape sequences intact.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

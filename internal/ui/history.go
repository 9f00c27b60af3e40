package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderHistory renders the date list next to the selected day's bundle.
func (m Model) renderHistory() string {
	if len(m.snapshot.Dates) == 0 {
		return m.placeholder("No archived analyses.")
	}

	list := m.renderDateList()
	detail := m.historyViewport.View()
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
}

// renderDateList renders the selectable date column, newest first.
func (m Model) renderDateList() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	// Keep the cursor visible when the list outgrows the pane.
	start := 0
	if m.historyIndex >= height {
		start = m.historyIndex - height + 1
	}

	var b strings.Builder
	rows := 0
	for i := start; i < len(m.snapshot.Dates) && rows < height; i++ {
		date := m.snapshot.Dates[i]
		label := padRight(" "+date, LayoutHistoryListWidth)

		switch {
		case i == m.historyIndex:
			b.WriteString(styles.Selected.Render(label))
		case date == m.snapshot.SelectedDate:
			b.WriteString(styles.AccentText.Render(label))
		default:
			b.WriteString(styles.Text.Render(label))
		}
		b.WriteString("\n")
		rows++
	}
	return lipgloss.NewStyle().Width(LayoutHistoryListWidth).Render(b.String())
}

// historyDetailWidth is the width left for the bundle pane beside the list.
func (m Model) historyDetailWidth() int {
	w := m.width - LayoutHistoryListWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

// updateHistoryViewport re-renders the selected day's bundle.
func (m *Model) updateHistoryViewport() {
	bundle := m.snapshot.Selected
	doc := bundleMarkdown(bundle)
	if doc == "" {
		hint := "Press enter to open the highlighted date."
		if m.snapshot.SelectedDate != "" {
			hint = "No analyses stored for " + m.snapshot.SelectedDate + "."
		}
		m.historyViewport.SetContent(m.placeholder(hint))
		return
	}
	m.historyViewport.SetContent(m.md.Render(doc))
}

// clampHistoryIndex keeps the cursor inside the date list as it changes.
func (m *Model) clampHistoryIndex() {
	if m.historyIndex >= len(m.snapshot.Dates) {
		m.historyIndex = len(m.snapshot.Dates) - 1
	}
	if m.historyIndex < 0 {
		m.historyIndex = 0
	}
}

// handleHistoryKey moves the date cursor and opens entries.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Dates)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.historyIndex < count-1 {
			m.historyIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.historyIndex > 0 {
			m.historyIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.historyIndex = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.historyIndex = count - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.session != nil && m.historyIndex < count {
			m.session.SelectDate(m.snapshot.Dates[m.historyIndex])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.historyViewport, cmd = m.historyViewport.Update(msg)
	return m, cmd
}

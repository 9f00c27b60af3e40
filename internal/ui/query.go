package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// renderQuery renders the transcript pane above the question editor.
func (m Model) renderQuery() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.queryViewport.View())
	b.WriteString("\n")
	b.WriteString(m.queryInput.View())
	b.WriteString("\n ")
	b.WriteString(styles.AccentText.Render("ctrl+s"))
	b.WriteString(styles.MutedText.Render(" submit  "))
	b.WriteString(styles.AccentText.Render("esc"))
	b.WriteString(styles.MutedText.Render(" back"))

	return b.String()
}

// queryViewportHeight leaves room for the editor and its hint line.
func (m Model) queryViewportHeight() int {
	h := m.contentHeight() - m.queryInput.Height() - 2
	if h < 1 {
		h = 1
	}
	return h
}

// updateQueryViewport re-renders the last exchange.
func (m *Model) updateQueryViewport() {
	doc := conversationMarkdown(m.snapshot.LastQuery)
	if doc == "" {
		hint := "Ask a question about the research corpus."
		if m.snapshot.Busy {
			hint = "Waiting for an answer..."
		}
		m.queryViewport.SetContent(m.placeholder(hint))
		return
	}
	m.queryViewport.SetContent(m.md.Render(doc))
}

// handleQueryKey owns all input while the editor is focused. Only the
// bindings checked here escape the textarea.
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewLatest)

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(View((int(m.currentView) + 1) % viewCount))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(View((int(m.currentView) + viewCount - 1) % viewCount))

	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.queryInput.Value())
		if text == "" || m.session == nil {
			return m, nil
		}
		m.session.SubmitQuery(text)
		m.queryInput.Reset()
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.queryViewport, cmd = m.queryViewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

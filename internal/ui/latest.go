package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// renderLatest renders the most recent analysis bundle.
func (m Model) renderLatest() string {
	return m.latestViewport.View()
}

// updateLatestViewport re-renders the latest bundle into its pane.
func (m *Model) updateLatestViewport() {
	doc := bundleMarkdown(m.snapshot.Latest)
	if doc == "" {
		m.latestViewport.SetContent(m.placeholder("No analysis available yet."))
		return
	}
	m.latestViewport.SetContent(m.md.Render(doc))
}

// handleLatestKey scrolls the latest pane.
func (m Model) handleLatestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.latestViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.latestViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.latestViewport, cmd = m.latestViewport.Update(msg)
	return m, cmd
}

// placeholder renders a muted hint for empty panes.
func (m Model) placeholder(text string) string {
	styles := m.theme.Styles()
	if m.snapshot.Busy {
		return "\n  " + styles.MutedText.Render("Fetching...")
	}
	return "\n  " + styles.MutedText.Render(text)
}

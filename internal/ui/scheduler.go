package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// renderScheduler renders the service scheduler panel: job table,
// schedule probe, and the manual regeneration hint.
func (m Model) renderScheduler() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n")

	sched := m.snapshot.Scheduler
	if sched == nil {
		return m.placeholder("Scheduler state unknown.")
	}

	b.WriteString("  ")
	b.WriteString(styles.StatusStyle(sched.Status).Render(strings.ToUpper(sched.Status)))
	b.WriteString(styles.MutedText.Render("  service scheduler"))
	b.WriteString("\n\n")

	if len(sched.Jobs) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("No scheduled jobs."))
		b.WriteString("\n")
	}
	for _, job := range sched.Jobs {
		name := job.Name
		if name == "" {
			name = job.ID
		}
		b.WriteString("  ")
		b.WriteString(styles.Text.Bold(true).Render(name))
		if job.Pending {
			b.WriteString(styles.WarningText.Render("  pending"))
		}
		b.WriteString("\n")

		b.WriteString("  ")
		if next := job.ParsedNextRun(); !next.IsZero() {
			b.WriteString(styles.MutedText.Render("next run "))
			b.WriteString(styles.AccentText.Render(next.Format("2006-01-02 15:04")))
			if until := time.Until(next); until > 0 {
				b.WriteString(styles.MutedText.Render(" (in " + humanizeDuration(until) + ")"))
			}
		} else {
			b.WriteString(styles.MutedText.Render("no run scheduled"))
		}
		b.WriteString("\n\n")
	}

	if check := m.snapshot.InitialCheck; check != nil {
		b.WriteString("  ")
		b.WriteString(styles.Text.Bold(true).Render("Schedule probe"))
		b.WriteString("\n  ")
		b.WriteString(styles.Text.Render(check.Message))
		b.WriteString("\n")

		if next := check.ParsedNextUpdate(); !next.IsZero() {
			b.WriteString("  ")
			b.WriteString(styles.MutedText.Render("next update "))
			b.WriteString(styles.AccentText.Render(next.Format("2006-01-02 15:04")))
			if until := time.Until(next); until > 0 {
				b.WriteString(styles.MutedText.Render(" (in " + humanizeDuration(until) + ")"))
			}
			b.WriteString("\n")
		}
		if check.NeedsUpdate {
			b.WriteString("  ")
			b.WriteString(styles.WarningText.Render("An update is due."))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  ")
	b.WriteString(styles.AccentText.Render("u"))
	b.WriteString(styles.MutedText.Render(" regenerate all analyses now"))
	b.WriteString("\n")

	return b.String()
}

// handleSchedulerKey triggers the manual regeneration.
func (m Model) handleSchedulerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.TriggerUpdate) {
		if m.session != nil {
			m.session.TriggerUpdate()
		}
	}
	return m, nil
}

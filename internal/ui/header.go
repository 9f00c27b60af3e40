package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderHeader renders the status bar: logo, session phase, service
// scheduler state, next update countdown, and data freshness.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	var parts []string

	// Logo
	parts = append(parts, bg.Render("stetho", styles.Logo))

	// Session phase badge
	phase := m.snapshot.Phase.String()
	parts = append(parts, styles.StatusStyle(phase).Render(strings.ToUpper(phase)))

	// Busy indicator
	if m.snapshot.Busy {
		parts = append(parts, m.spin.View()+bg.Render("working", styles.AccentText))
	}

	// Service scheduler chip
	if sched := m.snapshot.Scheduler; sched != nil {
		if sched.Running() {
			parts = append(parts, bg.Render("● service", styles.SuccessText))
		} else {
			parts = append(parts, bg.Render("● service", styles.DangerText))
		}
	}

	// Next scheduled update countdown
	if !compact {
		if check := m.snapshot.InitialCheck; check != nil {
			if next := check.ParsedNextUpdate(); !next.IsZero() {
				if until := time.Until(next); until > 0 {
					parts = append(parts,
						bg.Render("Next update:", styles.MutedText)+bg.Space()+
							bg.Render(humanizeDuration(until), styles.InfoText))
				}
			}
		}
	}

	// Data freshness
	if timeStr := m.formatFreshness(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// formatFreshness formats the store's last data change with a relative
// indicator.
func (m Model) formatFreshness() string {
	updated := m.snapshot.LastUpdated
	if updated.IsZero() {
		return ""
	}

	since := time.Since(updated)
	timeStr := updated.Format("15:04:05")

	switch {
	case since < time.Minute:
		timeStr += " (now)"
	case since < time.Hour:
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return timeStr
}

// renderCommandBar renders the per-view command hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewHistory:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"r", "Refresh"},
			{"1-5", "Views"},
			{"?", "More"},
		}
	case ViewStats:
		commands = []cmd{
			{"r", "Refresh"},
			{"1-5", "Views"},
			{"?", "More"},
		}
	case ViewScheduler:
		commands = []cmd{
			{"u", "Trigger update"},
			{"r", "Refresh"},
			{"1-5", "Views"},
			{"?", "More"},
		}
	case ViewQuery:
		commands = []cmd{
			{"ctrl+s", "Submit"},
			{"esc", "Back"},
			{"tab", "Next view"},
		}
	default: // ViewLatest
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Refresh"},
			{"1-5", "Views"},
			{"tab", "Next view"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	segments = append(segments,
		bg.Render(m.viewTitle(), styles.Text.Bold(true)))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// viewTitle names the active view for the command bar.
func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewLatest:
		return "Latest"
	case ViewHistory:
		return "History"
	case ViewStats:
		return "Statistics"
	case ViewScheduler:
		return "Scheduler"
	case ViewQuery:
		return "Query"
	default:
		return ""
	}
}

// renderBanner renders the error or notice line. The row is always
// present so the content below never reflows; it renders blank when
// there is nothing to report.
func (m Model) renderBanner() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	if err := m.snapshot.Err; err != nil {
		label := classifyServiceError(err)
		detail := truncate(err.Error(), BannerErrorLimit)
		line := bg.Render(label, styles.DangerText) + bg.Space() +
			bg.Render(detail, styles.Text) + bg.Spaces(2) +
			bg.Render("x", styles.AccentText) + bg.Space() +
			bg.Render("dismiss", styles.MutedText)
		return bg.FillLine(line, m.width)
	}

	if notice := m.snapshot.Notice; notice != "" {
		line := bg.Render("●", styles.InfoText) + bg.Space() +
			bg.Render(truncate(notice, BannerErrorLimit), styles.Text) + bg.Spaces(2) +
			bg.Render("x", styles.AccentText) + bg.Space() +
			bg.Render("dismiss", styles.MutedText)
		return bg.FillLine(line, m.width)
	}

	return bg.FillLine("", m.width)
}

// classifyServiceError returns a short label for the banner.
func classifyServiceError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "SERVICE OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}


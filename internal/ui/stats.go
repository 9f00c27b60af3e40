package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStats renders corpus statistics as a fact sheet.
func (m Model) renderStats() string {
	stats := m.snapshot.Stats
	if stats == nil {
		return m.placeholder("No statistics available yet.")
	}

	styles := m.theme.Styles()
	labelW := 16

	var b strings.Builder
	b.WriteString("\n")

	row := func(label, value string, style lipgloss.Style) {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render(padRight(label, labelW)))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	statusStyle := styles.SuccessText
	if stats.Status != "active" {
		statusStyle = styles.WarningText
	}

	row("Corpus", stats.Status, statusStyle)
	row("Total analyses", fmt.Sprintf("%d", stats.TotalAnalyses), styles.Text)
	row("Days covered", fmt.Sprintf("%d", stats.UniqueDates), styles.Text)
	if stats.LatestDate != "" {
		row("Latest day", stats.LatestDate, styles.AccentText)
	}

	types := m.orderedTypes()
	if len(types) > 0 {
		b.WriteString("\n  ")
		b.WriteString(styles.Text.Bold(true).Render("Analyses by type"))
		b.WriteString("\n")
		for _, name := range types {
			color := lipgloss.NewStyle().Foreground(styles.StatusColor(name))
			b.WriteString("  ")
			b.WriteString(color.Render(padRight(titleCase(name), labelW)))
			b.WriteString(styles.Text.Render(fmt.Sprintf("%d", stats.TypeCounts[name])))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// orderedTypes lists analysis types in the service's declared order,
// with any extra counted types appended alphabetically.
func (m Model) orderedTypes() []string {
	stats := m.snapshot.Stats
	if stats == nil {
		return nil
	}

	seen := make(map[string]bool, len(stats.AnalysisTypes))
	types := make([]string, 0, len(stats.TypeCounts))
	for _, name := range stats.AnalysisTypes {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		types = append(types, name)
	}

	var extra []string
	for name := range stats.TypeCounts {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(types, extra...)
}

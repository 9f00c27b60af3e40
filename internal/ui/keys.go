package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	Refresh       key.Binding
	DismissBanner key.Binding
	Tab           key.Binding
	ShiftTab      key.Binding
	Escape        key.Binding

	// View switching
	ViewLatest    key.Binding
	ViewHistory   key.Binding
	ViewStats     key.Binding
	ViewScheduler key.Binding
	ViewQuery     key.Binding

	// History actions
	Confirm key.Binding

	// Scheduler actions
	TriggerUpdate key.Binding

	// Query actions
	Submit key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh data"),
		),
		DismissBanner: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss banner"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to latest"),
		),

		// View switching
		ViewLatest: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Latest analysis"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "History"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Statistics"),
		),
		ViewScheduler: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Scheduler"),
		),
		ViewQuery: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Ask a question"),
		),

		// History actions
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open selected date"),
		),

		// Scheduler actions
		TriggerUpdate: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Trigger update"),
		),

		// Query actions
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit question"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views
		{k.ViewLatest, k.ViewHistory, k.ViewStats, k.ViewScheduler, k.ViewQuery},
		{k.Tab, k.ShiftTab, k.Escape},
		// Navigation
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.HalfPageDown, k.HalfPageUp},
		// Actions
		{k.Refresh, k.TriggerUpdate, k.Confirm, k.Submit, k.DismissBanner},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}

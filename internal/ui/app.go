// Package ui provides the Bubble Tea dashboard for stetho.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessen42/stetho/internal/prefs"
	"github.com/tessen42/stetho/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLatest View = iota
	ViewHistory
	ViewStats
	ViewScheduler
	ViewQuery
)

const viewCount = 5

// viewKeys are the stable names views are persisted under in prefs.
var viewKeys = [viewCount]string{"latest", "history", "stats", "scheduler", "query"}

// key returns the view's stable persistence name.
func (v View) key() string {
	if v < 0 || int(v) >= viewCount {
		return viewKeys[0]
	}
	return viewKeys[v]
}

// viewFromKey resolves a persisted view name, defaulting to the latest view.
func viewFromKey(name string) View {
	for i, k := range viewKeys {
		if k == name {
			return View(i)
		}
	}
	return ViewLatest
}

// Controller is the slice of the session the dashboard drives. Every
// method is asynchronous or instant; none may block the event loop.
type Controller interface {
	Refresh()
	SelectDate(date string)
	SubmitQuery(text string)
	TriggerUpdate()
	DismissError()
	DismissNotice()
}

// Options configures the UI.
type Options struct {
	Session   Controller
	Store     *state.Store
	Start     func() // invoked once the event loop is running
	ThemeName string
	StartView string // persisted view key; unknown values open the latest view
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	session   Controller
	store     *state.Store
	start     func()
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	keys        keyMap

	// Data state
	snapshot  state.Snapshot
	refreshed time.Time

	// Busy indicator
	spin spinner.Model

	// Markdown rendering
	md *markdownRenderer

	// Latest view
	latestViewport viewport.Model

	// History view
	historyIndex    int
	historyViewport viewport.Model

	// Query view
	queryInput    textarea.Model
	queryViewport viewport.Model

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	ta := textarea.New()
	ta.Placeholder = "Ask about the recent research corpus..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	startView := viewFromKey(opts.StartView)
	if startView == ViewQuery {
		ta.Focus()
	}

	return Model{
		session:     opts.Session,
		store:       opts.Store,
		start:       opts.Start,
		prefsPath:   prefsPath,
		theme:       theme,
		currentView: startView,
		keys:        DefaultKeyMap(),
		spin:        sp,
		queryInput:  ta,
		md:          newMarkdownRenderer(MarkdownWrapLimit),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spin.Tick,
		tickCmd(UITickInterval),
	}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg {
			start()
			return nil
		})
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.md = newMarkdownRenderer(m.markdownWrapWidth())
		if !m.ready {
			m.initViewports()
		}
		m.ready = true
		m.resizeViewports()
		m.updateAllViewports()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(UITickInterval)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case StateChanged:
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// applySnapshot installs a fresh view state snapshot and re-renders the
// content panes that derive from it.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.refreshed = time.Now()
	m.clampHistoryIndex()
	if m.ready {
		m.updateAllViewports()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// The query view owns the keyboard while its input is focused;
	// only a handful of control keys bypass the textarea.
	if m.currentView == ViewQuery {
		return m.handleQueryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.session != nil {
			m.session.Refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.DismissBanner):
		m.dismissBanner()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(View((int(m.currentView) + 1) % viewCount))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(View((int(m.currentView) + viewCount - 1) % viewCount))

	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewLatest)

	case key.Matches(msg, m.keys.ViewLatest):
		return m.switchView(ViewLatest)

	case key.Matches(msg, m.keys.ViewHistory):
		return m.switchView(ViewHistory)

	case key.Matches(msg, m.keys.ViewStats):
		return m.switchView(ViewStats)

	case key.Matches(msg, m.keys.ViewScheduler):
		return m.switchView(ViewScheduler)

	case key.Matches(msg, m.keys.ViewQuery):
		return m.switchView(ViewQuery)
	}

	// View-specific keys
	switch m.currentView {
	case ViewLatest:
		return m.handleLatestKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	case ViewScheduler:
		return m.handleSchedulerKey(msg)
	}

	return m, nil
}

// switchView changes the active view and manages input focus.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == ViewQuery && v != ViewQuery {
		m.queryInput.Blur()
	}
	m.currentView = v
	if v == ViewQuery {
		m.queryInput.Focus()
		return m, textarea.Blink
	}
	if v == ViewHistory {
		m.clampHistoryIndex()
	}
	return m, nil
}

// cycleTheme advances to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.savePrefs()
	if m.ready {
		m.updateAllViewports()
	}
}

// savePrefs records the theme and active view so the next launch restores
// them. Best-effort: a write failure only costs the saved preference.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: m.currentView.key()})
}

// dismissBanner clears whichever banner line is showing.
func (m *Model) dismissBanner() {
	if m.session == nil {
		return
	}
	if m.snapshot.Err != nil {
		m.session.DismissError()
		m.snapshot.Err = nil
		return
	}
	if m.snapshot.Notice != "" {
		m.session.DismissNotice()
		m.snapshot.Notice = ""
	}
}

// renderMain renders the full UI: header, command bar, banner, content.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLatest:
		return m.renderLatest()
	case ViewHistory:
		return m.renderHistory()
	case ViewStats:
		return m.renderStats()
	case ViewScheduler:
		return m.renderScheduler()
	case ViewQuery:
		return m.renderQuery()
	default:
		return ""
	}
}

// contentHeight is the number of rows available below the chrome.
func (m Model) contentHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

// markdownWrapWidth caps the markdown wrap at the terminal width.
func (m Model) markdownWrapWidth() int {
	w := m.width - 4
	if w > MarkdownWrapLimit {
		w = MarkdownWrapLimit
	}
	if w < 20 {
		w = 20
	}
	return w
}

// initViewports builds the scrollable panes once the first terminal size
// is known.
func (m *Model) initViewports() {
	h := m.contentHeight()
	m.latestViewport = viewport.New(m.width, h)
	m.historyViewport = viewport.New(m.historyDetailWidth(), h)
	m.queryViewport = viewport.New(m.width, m.queryViewportHeight())
}

// resizeViewports applies the current terminal size to every pane.
func (m *Model) resizeViewports() {
	h := m.contentHeight()
	m.latestViewport.Width = m.width
	m.latestViewport.Height = h
	m.historyViewport.Width = m.historyDetailWidth()
	m.historyViewport.Height = h
	m.queryViewport.Width = m.width
	m.queryViewport.Height = m.queryViewportHeight()
	m.queryInput.SetWidth(m.width - 2)
}

// updateAllViewports re-renders every derived content pane.
func (m *Model) updateAllViewports() {
	m.updateLatestViewport()
	m.updateHistoryViewport()
	m.updateQueryViewport()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// StateChanged reports that the session changed the view state store.
// The session's notify hook sends it through Program.Send; the model
// responds by pulling a fresh snapshot.
type StateChanged struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

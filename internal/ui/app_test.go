package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessen42/stetho/internal/prefs"
	"github.com/tessen42/stetho/internal/research"
	"github.com/tessen42/stetho/internal/state"
)

// fakeController records the session calls the dashboard makes.
type fakeController struct {
	refreshes      int
	updates        int
	dismissErrors  int
	dismissNotices int
	selected       []string
	queries        []string
}

func (f *fakeController) Refresh()                { f.refreshes++ }
func (f *fakeController) SelectDate(date string)  { f.selected = append(f.selected, date) }
func (f *fakeController) SubmitQuery(text string) { f.queries = append(f.queries, text) }
func (f *fakeController) TriggerUpdate()          { f.updates++ }
func (f *fakeController) DismissError()           { f.dismissErrors++ }
func (f *fakeController) DismissNotice()          { f.dismissNotices++ }

var _ Controller = (*fakeController)(nil)

// newTestModel builds a sized, ready model wired to the fake controller.
func newTestModel(t *testing.T, ctrl *fakeController) Model {
	t.Helper()
	m := New(Options{
		Session:   ctrl,
		Store:     &state.Store{},
		ThemeName: "Nightfox",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

// apply runs one Update step and asserts the model type survives.
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

// applyCmd is apply for the cases where the returned command matters.
func applyCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func historySnapshot() state.Snapshot {
	return state.Snapshot{
		Phase: state.PhaseReady,
		Dates: []string{"2025-06-03", "2025-06-02", "2025-06-01"},
	}
}

func TestNew_StartsOnLatestView(t *testing.T) {
	m := New(Options{ThemeName: "NoSuchTheme"})
	if m.currentView != ViewLatest {
		t.Fatalf("currentView = %v, want ViewLatest", m.currentView)
	}
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme fallback = %q, want Nightfox", m.theme.Name)
	}
}

func TestUpdate_WindowSizeMakesReady(t *testing.T) {
	m := New(Options{Store: &state.Store{}})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q, want Loading...", got)
	}

	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}
	if !strings.Contains(m.View(), "stetho") {
		t.Error("rendered view missing the header logo")
	}
}

func TestHandleKey_SwitchesViews(t *testing.T) {
	m := newTestModel(t, &fakeController{})

	cases := []struct {
		press string
		want  View
	}{
		{"2", ViewHistory},
		{"3", ViewStats},
		{"4", ViewScheduler},
		{"1", ViewLatest},
		{"tab", ViewHistory},
		{"shift+tab", ViewLatest},
		{"shift+tab", ViewQuery},
	}
	for _, tc := range cases {
		m = apply(t, m, keyMsg(tc.press))
		if m.currentView != tc.want {
			t.Fatalf("after %q currentView = %v, want %v", tc.press, m.currentView, tc.want)
		}
	}

	if !m.queryInput.Focused() {
		t.Error("query input not focused after switching to the query view")
	}
	m = apply(t, m, keyMsg("esc"))
	if m.currentView != ViewLatest {
		t.Fatalf("esc from query landed on %v, want ViewLatest", m.currentView)
	}
	if m.queryInput.Focused() {
		t.Error("query input still focused after leaving the query view")
	}
}

func TestHandleKey_Quit(t *testing.T) {
	m := newTestModel(t, &fakeController{})

	_, cmd := applyCmd(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestNew_RestoresSavedView(t *testing.T) {
	m := New(Options{StartView: "scheduler"})
	if m.currentView != ViewScheduler {
		t.Fatalf("currentView = %v, want ViewScheduler", m.currentView)
	}

	m = New(Options{StartView: "does-not-exist"})
	if m.currentView != ViewLatest {
		t.Fatalf("unknown view landed on %v, want ViewLatest", m.currentView)
	}

	m = New(Options{StartView: "query"})
	if m.currentView != ViewQuery {
		t.Fatalf("currentView = %v, want ViewQuery", m.currentView)
	}
	if !m.queryInput.Focused() {
		t.Error("query input not focused when restoring the query view")
	}
}

func TestHandleKey_QuitPersistsThemeAndView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Session:   &fakeController{},
		Store:     &state.Store{},
		ThemeName: "Kanagawa",
		PrefsPath: path,
	})
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = apply(t, m, keyMsg("3"))

	if _, cmd := applyCmd(t, m, keyMsg("q")); cmd == nil {
		t.Fatal("q returned no command")
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load saved prefs: %v", err)
	}
	if saved.Theme != "Kanagawa" || saved.View != "stats" {
		t.Fatalf("saved prefs = %+v, want Kanagawa on the stats view", saved)
	}
}

func TestHandleKey_HelpOverlayToggles(t *testing.T) {
	m := newTestModel(t, &fakeController{})

	m = apply(t, m, keyMsg("?"))
	if !m.showHelp {
		t.Fatal("? did not open the help overlay")
	}
	if !strings.Contains(m.View(), "Views") {
		t.Error("help overlay missing its sections")
	}

	// Any key closes the overlay and is otherwise swallowed.
	m, cmd := applyCmd(t, m, keyMsg("q"))
	if m.showHelp {
		t.Fatal("overlay still open after a keypress")
	}
	if cmd != nil {
		t.Fatal("closing the overlay leaked the key to the global handler")
	}
}

func TestHandleKey_RefreshCallsController(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)

	apply(t, m, keyMsg("r"))
	if ctrl.refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", ctrl.refreshes)
	}
}

func TestHandleKey_DismissBannerPrefersError(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)
	m = apply(t, m, snapshotMsg(state.Snapshot{
		Err:    errors.New("dial tcp: connection refused"),
		Notice: "update queued",
	}))

	m = apply(t, m, keyMsg("x"))
	if ctrl.dismissErrors != 1 || ctrl.dismissNotices != 0 {
		t.Fatalf("first x: dismissErrors = %d dismissNotices = %d, want 1 and 0",
			ctrl.dismissErrors, ctrl.dismissNotices)
	}

	m = apply(t, m, keyMsg("x"))
	if ctrl.dismissNotices != 1 {
		t.Fatalf("second x: dismissNotices = %d, want 1", ctrl.dismissNotices)
	}

	// Nothing left to dismiss.
	apply(t, m, keyMsg("x"))
	if ctrl.dismissErrors != 1 || ctrl.dismissNotices != 1 {
		t.Fatalf("third x changed counts: dismissErrors = %d dismissNotices = %d",
			ctrl.dismissErrors, ctrl.dismissNotices)
	}
}

func TestHistoryView_CursorAndSelect(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)
	m = apply(t, m, snapshotMsg(historySnapshot()))
	m = apply(t, m, keyMsg("2"))

	m = apply(t, m, keyMsg("j"))
	if m.historyIndex != 1 {
		t.Fatalf("historyIndex after j = %d, want 1", m.historyIndex)
	}

	m = apply(t, m, keyMsg("enter"))
	if len(ctrl.selected) != 1 || ctrl.selected[0] != "2025-06-02" {
		t.Fatalf("selected = %v, want [2025-06-02]", ctrl.selected)
	}

	m = apply(t, m, keyMsg("G"))
	if m.historyIndex != 2 {
		t.Fatalf("historyIndex after G = %d, want 2", m.historyIndex)
	}
	m = apply(t, m, keyMsg("g"))
	if m.historyIndex != 0 {
		t.Fatalf("historyIndex after g = %d, want 0", m.historyIndex)
	}
	m = apply(t, m, keyMsg("k"))
	if m.historyIndex != 0 {
		t.Fatalf("historyIndex clamped at top = %d, want 0", m.historyIndex)
	}
}

func TestUpdate_SnapshotClampsHistoryCursor(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	m = apply(t, m, snapshotMsg(historySnapshot()))
	m = apply(t, m, keyMsg("2"))
	m = apply(t, m, keyMsg("G"))

	m = apply(t, m, snapshotMsg(state.Snapshot{Dates: []string{"2025-06-03"}}))
	if m.historyIndex != 0 {
		t.Fatalf("historyIndex after shrink = %d, want 0", m.historyIndex)
	}
}

func TestSchedulerView_TriggerUpdate(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)

	m = apply(t, m, keyMsg("4"))
	apply(t, m, keyMsg("u"))
	if ctrl.updates != 1 {
		t.Fatalf("updates = %d, want 1", ctrl.updates)
	}
}

func TestQueryView_OwnsTypingAndSubmit(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)
	m = apply(t, m, keyMsg("5"))

	// Plain letters feed the editor instead of global bindings.
	m = apply(t, m, keyMsg("q"))
	if m.currentView != ViewQuery {
		t.Fatal("typing q quit the query view")
	}
	if got := m.queryInput.Value(); got != "q" {
		t.Fatalf("editor value = %q, want q", got)
	}

	m.queryInput.SetValue("  What changed this week?  ")
	m = apply(t, m, keyMsg("ctrl+s"))
	if len(ctrl.queries) != 1 || ctrl.queries[0] != "What changed this week?" {
		t.Fatalf("queries = %v, want trimmed question", ctrl.queries)
	}
	if got := m.queryInput.Value(); got != "" {
		t.Fatalf("editor not reset after submit: %q", got)
	}

	// Blank input never reaches the session.
	apply(t, m, keyMsg("ctrl+s"))
	if len(ctrl.queries) != 1 {
		t.Fatalf("blank submit reached the session: %v", ctrl.queries)
	}
}

func TestQueryView_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	m = apply(t, m, keyMsg("5"))

	_, cmd := applyCmd(t, m, keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c produced %T, want tea.QuitMsg", cmd())
	}
}

func TestUpdate_StateChangedPullsSnapshot(t *testing.T) {
	store := &state.Store{}
	store.SetNotice("fresh")
	m := New(Options{Store: store})

	_, cmd := applyCmd(t, m, StateChanged{})
	if cmd == nil {
		t.Fatal("StateChanged returned no command")
	}
	msg, ok := cmd().(snapshotMsg)
	if !ok {
		t.Fatalf("StateChanged command produced %T, want snapshotMsg", cmd())
	}
	if got := state.Snapshot(msg).Notice; got != "fresh" {
		t.Fatalf("pulled snapshot notice = %q, want fresh", got)
	}
}

func TestCycleTheme_PersistsPreference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Store: &state.Store{}, ThemeName: "Nightfox", PrefsPath: path})
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = apply(t, m, keyMsg("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme after T = %q, want Kanagawa", m.theme.Name)
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load saved prefs: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestClassifyServiceError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"), "SERVICE OFFLINE"},
		{errors.New("dial tcp: lookup stetho.local: no such host"), "HOST NOT FOUND"},
		{errors.New("context deadline exceeded"), "TIMEOUT"},
		{errors.New("Get \"/health\": request timeout"), "TIMEOUT"},
		{errors.New("service error: 500"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyServiceError(tc.err); got != tc.want {
			t.Errorf("classifyServiceError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestOrderedTypes(t *testing.T) {
	var m Model
	m.snapshot.Stats = &research.StatsSummary{
		AnalysisTypes: []string{"recent_trends", "clinical", "recent_trends"},
		TypeCounts: map[string]int{
			"recent_trends": 3,
			"clinical":      2,
			"research":      1,
			"archived":      1,
		},
	}

	got := m.orderedTypes()
	want := []string{"recent_trends", "clinical", "archived", "research"}
	if len(got) != len(want) {
		t.Fatalf("orderedTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orderedTypes = %v, want %v", got, want)
		}
	}
}

func TestRenderViews_SmokeWithData(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	m = apply(t, m, snapshotMsg(state.Snapshot{
		Phase:        state.PhaseReady,
		Dates:        []string{"2025-06-01"},
		SelectedDate: "2025-06-01",
		Latest: &research.AnalysisBundle{
			Date:         "2025-06-01",
			RecentTrends: "Something moved.",
		},
		Selected: &research.AnalysisBundle{
			Date:     "2025-06-01",
			Clinical: "A trial opened.",
		},
		Stats: &research.StatsSummary{
			TotalAnalyses: 3,
			UniqueDates:   1,
			AnalysisTypes: []string{"recent_trends"},
			TypeCounts:    map[string]int{"recent_trends": 3},
			LatestDate:    "2025-06-01",
			Status:        "active",
		},
		Scheduler: &research.SchedulerStatus{Status: "running"},
		InitialCheck: &research.InitialCheck{
			Message:    "Data is up to date.",
			NextUpdate: "2025-06-02T06:00:00",
		},
		LastQuery: &research.QueryResult{Query: "q", Response: "a"},
	}))

	for v := ViewLatest; v < View(viewCount); v++ {
		m.currentView = v
		if out := m.View(); out == "" {
			t.Errorf("view %d rendered empty output", v)
		}
	}
}

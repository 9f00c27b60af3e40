// Package ui provides the terminal dashboard for stetho.
//
// # Architecture Overview
//
// The UI is a Bubble Tea application. It never talks to the research
// service itself: user intent flows into the session layer through the
// Controller interface, results land in the view state store, and the
// model re-reads an immutable snapshot of that store whenever the
// session reports a change. The model is therefore a pure projection of
// store snapshots plus local widget state.
//
//	key press ──> Controller method (async, returns immediately)
//	                   │
//	                   ▼
//	session fetch ──> state.Store ──> StateChanged via Program.Send
//	                                       │
//	                                       ▼
//	                            fetchSnapshotCmd ──> snapshotMsg ──> View()
//
// A one-second tick drives clock and countdown redraws and re-pulls the
// snapshot as a fallback, so the dashboard stays live even if a change
// notification is lost.
//
// # Package Structure
//
//   - app.go: Model, Options, Update loop, view switching, messages
//   - header.go: status bar, command bar, and the banner line
//   - latest.go, history.go, stats.go, scheduler.go, query.go: one file
//     per view, each owning its render and key handling
//   - markdown.go: glamour rendering and document composition
//   - theme.go, style_helpers.go: palettes and background-safe styling
//   - keys.go: central key bindings
//   - help.go: the help overlay
//
// # View Types
//
// Five views are available, switched with the number keys or tab:
//
//   - Latest: the newest analysis bundle, rendered as markdown
//   - History: archive dates beside the selected day's bundle
//   - Statistics: corpus totals and per-type counts
//   - Scheduler: service jobs, the schedule probe, manual regeneration
//   - Query: free-form questions against the research corpus
//
// # Input Rules
//
// Global bindings are disabled while the query editor is focused; only
// ctrl+c, esc, tab, shift+tab, and ctrl+s bypass it, so typed text is
// never mistaken for a command. The help overlay closes on any key.
//
// # External Dependencies
//
//   - state.Store: snapshot source for everything rendered
//   - Controller: the session operations the dashboard can invoke
//   - prefs: theme and active-view persistence across runs
//
// # Design Principles
//
//   - The event loop never blocks: every Controller call returns
//     immediately and completion arrives as a store change
//   - Renders are derived, not accumulated: each snapshot wholesale
//     replaces the previous data
//   - The banner row is always reserved so content never reflows when
//     an error appears or clears
package ui

// Package state provides thread-safe view state for the stetho dashboard.
//
// # Overview
//
// This package implements the store that every other layer meets in the
// middle of: session operations and background pollers write datasets into
// it, and the UI renders snapshots out of it. It also carries the two
// pieces of cross-cutting state the whole interface keys off: the session
// lifecycle phase and the single busy/error pair behind the spinner and
// the dismissible error banner.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producers (session ops,        Consumer (UI):
//	pollers):
//	┌──────────────────┐          ┌──────────────────┐
//	│ SetLatest()      │          │                  │
//	│ SetDates()       │──mutex──→│ store.Snapshot() │
//	│ SetScheduler()   │          │       ↓          │
//	│ ...              │          │   render views   │
//	└──────────────────┘          └──────────────────┘
//
// # Datasets
//
// Each dataset is independently fetched and independently replaced:
//
//   - InitialCheck: startup status and next-update schedule
//   - Latest: the newest analysis bundle
//   - Dates / SelectedDate / Selected: the history index and its selection
//   - Stats: corpus statistics
//   - Scheduler: background scheduler state
//   - LastQuery: the most recent ad-hoc answer
//
// A write replaces its dataset wholesale; readers never observe a
// partially updated entity. Datasets a fetch has not populated yet are nil
// (or empty), and the views render placeholders for them.
//
// # Operation State
//
// BeginOperation and FinishOperation bracket every user-initiated
// operation. Begin raises the busy flag and clears the previous error and
// notice in one critical section, so the banner and spinner can never
// disagree about a freshly started operation. Finish drops the flag and
// records the failure, unless the failure is a cancellation: a cancelled
// operation was superseded or the session is shutting down, neither of
// which is news the user needs.
//
// Scope identity lives one layer up, in the session package: a superseded
// operation's goroutine is simply never allowed to call back into the
// store, so this package stays free of generation bookkeeping.
//
// # History Cache
//
// Per-date bundles are remembered for the life of the session. Selecting a
// date that was fetched before shows the remembered bundle immediately
// while the fresh fetch is in flight; the fresh result then overwrites it.
// The cache is internal to the Store and dies with the session.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock: setters take the write lock,
// Snapshot takes the read lock. Locks are held only while copying, never
// across network I/O or rendering. Both directions copy: slices and maps
// are cloned on write and again on read, so no goroutine ever holds a
// reference into the store's interior.
//
// # Usage Example
//
//	store := &state.Store{}
//
//	// Session operation:
//	store.BeginOperation()
//	bundle, err := fetchLatest(ctx)
//	if err == nil {
//		store.SetLatest(bundle)
//	}
//	store.FinishOperation(err)
//
//	// UI tick:
//	snap := store.Snapshot()
//	render(snap)
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Channels (a mutex is simpler for many writers/one reader)
//   - Incremental updates (wholesale replacement is easier to reason about)
//   - Persistence (all state is session-scoped and dies with the run)
//   - Pub/sub (the UI snapshots on its own schedule, nudged by the session)
//
// The zero value is ready to use and reports PhaseInitializing, which is
// exactly the state a freshly launched session is in.
package state

// Package session implements the request-orchestration core of stetho: the
// lifecycle controller, the busy/error aggregator, the cancellation
// coordinator, and the background schedulers.
//
// # Overview
//
// Everything the dashboard does against the network flows through one
// Session. User actions (refresh, date selection, queries, update
// triggers) become operations; operations run retry-wrapped fetches under
// a cancellation scope; results land in the state store only while their
// scope is still the authoritative one.
//
// # Lifecycle
//
// A session moves through three phases:
//
//	Initializing ──(initial-status success, or fan-out settled)──→ Ready
//	     │                                                           │
//	     └───────────────────────(Terminate)───────────────────────→ Terminated
//
// Start enters Initializing and launches a five-way concurrent fan-out:
// initial status, latest analyses, date index, stats, and scheduler
// status. Under the default gate the initial-status result alone decides
// readiness; the other four populate whatever they can. Even a fully
// failed fan-out still ends in Ready, with the failure in the error
// banner, so the UI is never wedged in Initializing behind a dead service.
//
// Ready arms the two ambient schedulers. Terminate cancels the current
// scope and both schedulers, waits for in-flight goroutines, and parks the
// session in Terminated.
//
// # Operations
//
// Run is the busy/error aggregator. Exactly one logical operation is
// current at a time:
//
//   - busy rises and the previous error clears when the operation starts
//   - a new cancellation scope supersedes and cancels the previous one
//   - busy falls only after everything the operation fanned out has
//     settled, never part-way
//   - a non-cancellation failure becomes the dismissible banner error;
//     a cancellation vanishes silently, because it only ever means the
//     operation was superseded or the session ended
//
// # Scopes
//
// Scopes is the cancellation coordinator. Scope identity, not just the
// presence of a token, is what protects the store: a superseded
// operation's goroutine keeps running until its next suspension point, and
// whatever it produces afterwards is refused by Scope.Commit. The commit
// check and the write run under the coordinator's lock, so "check then
// write" cannot interleave with a newer Begin.
//
// # Ambient Schedulers
//
// The heartbeat pings the service at startup and every four minutes so an
// idle backend is not suspended by its host; misses are logged with a
// consecutive count and otherwise ignored. The status poller refreshes
// scheduler state every minute without touching the busy flag or the
// error banner; a failed tick changes nothing and the next tick tries
// again. Both are plain ticker goroutines on the session's root context.
//
// # Testing
//
// The package is designed to be driven without a network or real clocks:
// the Fetcher interface accepts fakes, Options.Retry takes an injectable
// sleep, and the scheduler intervals shrink to milliseconds in tests.
package session

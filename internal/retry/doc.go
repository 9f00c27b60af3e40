// Package retry provides a bounded exponential-backoff combinator for
// operations against the research service.
//
// # Overview
//
// Do wraps a single fallible operation with an attempt budget and a
// cancellable backoff wait between attempts. It is a pure policy layer:
// it knows nothing about HTTP or the service, only about errors and time,
// so it is testable with fake operations and a fake sleep.
//
// # Backoff Shape
//
// The wait before attempt k (k >= 2) is Base << (k-1). With the default
// one-second base and three-attempt budget the worst case is:
//
//	attempt 1 ── fail ── wait 2s ── attempt 2 ── fail ── wait 4s ── attempt 3
//
// The bounded budget is what caps total latency; there is no separate
// wall-clock cap on the backoff curve.
//
// # Cancellation
//
// Cancellation is never retried. A cancelled context short-circuits
// everywhere it can be observed: before an attempt, inside an attempt
// (the operation returns the context's error), and during a backoff wait.
// In all three cases Do returns the cancellation directly, not an
// *AttemptsError, so callers can distinguish "superseded" from "failed".
//
// # Exhaustion
//
// When the budget runs out, Do wraps the last concrete failure in
// *AttemptsError. The wrapper's message carries the attempt count
// ("after 3 attempts: ...") and Unwrap exposes the underlying failure so
// errors.As/errors.Is classification still works through it.
package retry

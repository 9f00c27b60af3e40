// Package research provides an HTTP client for the medical research service API.
//
// # Overview
//
// This package defines the API client for communicating with the research
// service, the backend that generates daily medical research analyses and
// answers ad-hoc questions. It handles HTTP communication, JSON
// serialization, error classification, and type-safe representation of the
// service's payloads.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the service API schema
//   - errors.go: Error taxonomy shared by the retry and session layers
//
// # Client Usage
//
// Create a client using the server URL from configuration:
//
//	client, err := research.NewClient("127.0.0.1:8000", 0)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	bundle, err := client.FetchLatest(ctx)
//	if err != nil {
//		log.Printf("latest fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// The client covers the full dashboard contract:
//
//   - GET /health: Liveness check (response body discarded)
//   - GET /scheduler/initial-check: Startup status and next-update schedule
//   - GET /scheduler/status: Background scheduler state and job list
//   - GET /analyses/latest: Most recent analysis bundle
//   - GET /analyses/dates: Index of dates with analyses, newest first
//   - GET /analyses/{date}: Analysis bundle for one date
//   - GET /analyses/stats/summary: Corpus statistics
//   - POST /query: Ad-hoc research question
//   - POST /update-analyses: Manual regeneration trigger
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation control; in-flight I/O aborts promptly
//     when the context fires
//   - Set Accept: application/json (and Content-Type for POST bodies)
//   - Include User-Agent: stetho/0.1
//   - Return wrapped errors with context about what failed
//
// The per-attempt timeout is configurable and defaults to none: the
// service's generation endpoints run LLM pipelines and can legitimately
// take minutes, so a fixed low timeout would misclassify slow successes
// as failures.
//
// # Error Taxonomy
//
// Failures fall into three kinds, and the distinction drives retry and
// display policy elsewhere in the program:
//
//   - Network failures: connection refused, DNS failure, timeout. Wrapped
//     transport errors; transient and worth retrying.
//   - Service failures: the service responded with a non-success status.
//     Represented as *ServiceError carrying the HTTP status and the
//     "detail" message from the JSON error body.
//   - Cancellation: the request's context was cancelled. Detected with
//     IsCancelled; terminal, silent, never retried.
//
// Retryable(err) folds the first two together for the retry layer.
//
// # Timestamp Parsing
//
// The service emits timestamps in several shapes: RFC 3339, zone-less
// ISO 8601 (Python isoformat), and "2006-01-02 15:04:05" schedule strings.
// ParsedNextRun, ParsedNextUpdate, and ParsedTimestamp normalize these to
// time.Time, returning the zero time for missing or unparseable values.
// Analysis dates are plain "YYYY-MM-DD" strings and stay strings: the
// service owns date identity and the client never re-derives it.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Design Rationale
//
// The client is intentionally a thin transport primitive:
//
//   - No retries (the retry package layers policy on top)
//   - No caching (the session and state layers own data lifetime)
//   - No interpretation of payloads beyond decoding
//
// Keeping policy out of the transport keeps both halves independently
// testable: the client against httptest servers, the policy layers against
// fake Fetcher implementations.
package research

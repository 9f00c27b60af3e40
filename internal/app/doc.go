// Package app provides the orchestration layer for the stetho application.
//
// # Overview
//
// This package wires together configuration, logging, the research service
// client, the session, and the UI to create the complete stetho TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load stetho configuration from ~/.config/stetho/config.toml
//  2. Open the dated log file (the TUI owns the terminal)
//  3. Load user preferences (theme, view to reopen)
//  4. Initialize the HTTP client for the analysis service API
//  5. Create the shared state.Store for session and UI coordination
//  6. Create the session with a notify hook into the Bubble Tea program
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read stetho config
//	       ├─────> logging.Open()       Dated file logger
//	       ├─────> prefs.Load()         Theme and view preferences
//	       ├─────> research.NewClient() Create HTTP client
//	       ├─────> state.Store{}        Shared state container
//	       ├─────> session.New()        Request orchestration core
//	       └─────> tea.NewProgram()     Start TUI (blocks)
//
//	Session lifecycle:
//	┌─────────────────────────────────────────────┐
//	│ ui Init command calls sess.Start(ctx)       │
//	│  ├─> initialization fan-out populates store │
//	│  ├─> heartbeat and status poll schedulers   │
//	│  └─> notify() ──> program.Send(StateChanged)│
//	│      └─> UI pulls store.Snapshot()          │
//	└─────────────────────────────────────────────┘
//
// # Startup Ordering
//
// The session's notify hook sends messages through the Bubble Tea program,
// but the program cannot exist until the model does, and the model needs
// the session. Run resolves the cycle by deferring session startup into a
// ui Init command: session goroutines only run once the event loop is
// live, so Program.Send never fires before the program can receive it.
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Research client initialization failure (bad server URL)
//   - Terminal initialization failure
//
// Recoverable errors (logged or degraded, startup continues):
//   - Log directory not writable (diagnostics are discarded)
//   - Preferences file unreadable (defaults apply)
//   - Analysis service unreachable (the session retries and surfaces the
//     failure in the UI instead of aborting)
//
// Unlike a pre-flight liveness gate, an unreachable service is not fatal:
// the dashboard starts, shows the connection error, and recovers when the
// service comes back.
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/stetho/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/stetho/prefs.toml)
//   - ServerURL: Analysis service address override
//   - PollEvery: Scheduler poll interval override in seconds
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("stetho failed: %v", err)
//	}
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal. Business
// logic lives in domain packages (research, session, state, ui). The app
// package simply connects these pieces with sensible defaults for the
// single-operator dashboard use case.
package app

// Package config handles loading and parsing stetho configuration files.
//
// # Overview
//
// This package reads stetho's TOML configuration to discover the research
// service endpoint, timing knobs for the background schedulers, and the
// retry budget applied to user-initiated operations. Every field is
// optional: a missing file, a missing key, or a zero value all resolve to
// the built-in defaults.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stetho/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/stetho/config.toml
//   - Service endpoint: 127.0.0.1:8000
//   - Log directory: ~/.local/state/stetho
//   - Scheduler status poll: every 60 seconds
//   - Heartbeat: every 240 seconds
//   - Retry attempts per operation: 3
//   - Request timeout: none (cancellation only)
//   - Ready gate: "initial-check"
//
// # TOML Format
//
// Example config.toml:
//
//	server_url = "127.0.0.1:8000"
//	log_dir = "~/.local/state/stetho"
//	status_poll_seconds = 60
//	heartbeat_seconds = 240
//	retry_attempts = 3
//	request_timeout_seconds = 0
//	ready_on = "initial-check"
//
// Durations are whole seconds. ready_on accepts "initial-check" (the
// session becomes interactive as soon as the schedule probe succeeds) or
// "all" (it waits for the entire startup fan-out to settle).
//
// # Path Expansion
//
// The package handles several path formats:
//
//   - Absolute paths: Used as-is ("/var/log/stetho")
//   - Tilde paths: Expanded to home directory ("~/.config/stetho")
//   - Relative paths: Converted to absolute based on current directory
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - An unrecognized ready_on value
//
// Missing config files are NOT an error - defaults are used instead.
// This allows stetho to work out-of-the-box against a local service.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	client, err := research.NewClient(cfg.ServerURL, cfg.RequestTimeout)
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. stetho should
// work immediately against a research service running on the default local
// port, without requiring any configuration file to exist.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config

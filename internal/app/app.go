package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessen42/stetho/internal/config"
	"github.com/tessen42/stetho/internal/logging"
	"github.com/tessen42/stetho/internal/prefs"
	"github.com/tessen42/stetho/internal/research"
	"github.com/tessen42/stetho/internal/retry"
	"github.com/tessen42/stetho/internal/session"
	"github.com/tessen42/stetho/internal/state"
	"github.com/tessen42/stetho/internal/ui"
)

// The session is the dashboard's controller.
var _ ui.Controller = (*session.Session)(nil)

// Options configure the stetho application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/stetho/prefs.toml
	ServerURL  string // overrides the configured service address
	PollEvery  int    // seconds; zero uses the configured value
}

// Run boots the stetho TUI and blocks until the user quits or the
// context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	// The TUI owns the terminal, so diagnostics go to a dated file.
	logger, closeLogs, err := logging.Open(cfg.LogDir)
	if err != nil {
		logger = logging.Discard()
	} else {
		defer closeLogs()
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs", "error", err)
	}

	client, err := research.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init research client: %w", err)
	}

	store := &state.Store{}

	// The notify hook and the program reference each other. The program
	// variable is assigned before Run enters the event loop, and the
	// session only executes inside goroutines started from the loop's
	// Init command, so the hook always sees the assignment.
	var program *tea.Program
	sess := session.New(session.Options{
		Fetcher: client,
		Store:   store,
		Logger:  logger,
		Notify: func() {
			if program != nil {
				program.Send(ui.StateChanged{})
			}
		},
		Retry:          retry.Config{Attempts: cfg.RetryAttempts},
		ReadyOn:        cfg.ReadyOn,
		HeartbeatEvery: cfg.HeartbeatEvery,
		PollEvery:      cfg.PollEvery,
	})
	defer sess.Terminate()

	model := ui.New(ui.Options{
		Session:   sess,
		Store:     store,
		Start:     func() { sess.Start(ctx) },
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.View,
		PrefsPath: opts.PrefsPath,
	})

	program = tea.NewProgram(model, tea.WithAltScreen())
	logger.Info("starting dashboard", "server", cfg.ServerURL)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

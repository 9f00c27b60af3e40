// Package logging opens stetho's file-backed logger.
//
// The TUI owns the terminal, so nothing may write to stdout or stderr
// while it runs; all diagnostics go to a dated file under the configured
// log directory instead (stetho-YYYY-MM-DD.log, appended across runs).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Open creates dir if needed, opens today's log file for appending, and
// returns a logger writing to it plus a close function for shutdown.
func Open(dir string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	name := fmt.Sprintf("stetho-%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})

	return logger, func() { _ = file.Close() }, nil
}

// Discard returns a logger that drops everything. Used when the log file
// cannot be opened: a dashboard that cannot log still has to run.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

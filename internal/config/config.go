package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields stetho reads at startup. Durations arrive
// in the file as whole seconds and are converted here; zero RequestTimeout
// means requests run uncapped and rely on cancellation alone.
type Config struct {
	ServerURL      string
	LogDir         string
	PollEvery      time.Duration
	HeartbeatEvery time.Duration
	RetryAttempts  int
	RequestTimeout time.Duration
	ReadyOn        string
}

const (
	defaultConfigPath = "~/.config/stetho/config.toml"
	defaultLogDir     = "~/.local/state/stetho"
	defaultServerURL  = "127.0.0.1:8000"

	defaultPollSeconds      = 60
	defaultHeartbeatSeconds = 240
	defaultRetryAttempts    = 3

	// ReadyOn gates when the session leaves Initializing.
	ReadyOnInitialCheck = "initial-check"
	ReadyOnAll          = "all"
)

// Load locates and parses the stetho config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL             string `toml:"server_url"`
		LogDir                string `toml:"log_dir"`
		StatusPollSeconds     int    `toml:"status_poll_seconds"`
		HeartbeatSeconds      int    `toml:"heartbeat_seconds"`
		RetryAttempts         int    `toml:"retry_attempts"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		ReadyOn               string `toml:"ready_on"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.ServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if raw.StatusPollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.StatusPollSeconds) * time.Second
	}
	if raw.HeartbeatSeconds > 0 {
		cfg.HeartbeatEvery = time.Duration(raw.HeartbeatSeconds) * time.Second
	}
	if raw.RetryAttempts > 0 {
		cfg.RetryAttempts = raw.RetryAttempts
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	switch v := strings.TrimSpace(raw.ReadyOn); v {
	case "":
	case ReadyOnInitialCheck, ReadyOnAll:
		cfg.ReadyOn = v
	default:
		return Config{}, fmt.Errorf("parse config: unknown ready_on %q", v)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		ServerURL:      defaultServerURL,
		LogDir:         mustExpand(defaultLogDir),
		PollEvery:      defaultPollSeconds * time.Second,
		HeartbeatEvery: defaultHeartbeatSeconds * time.Second,
		RetryAttempts:  defaultRetryAttempts,
		ReadyOn:        ReadyOnInitialCheck,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

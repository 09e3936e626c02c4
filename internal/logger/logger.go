// Package logger sets up log/slog for the game. The terminal is owned
// by the renderer, so logs always go to a file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const appName = "stick-battle-arena"

// New builds a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel(), AddSource: cfg.AddSource}
	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("app", appName)
}

// Open creates the log file named by cfg (or the default under the XDG
// state directory), installs the logger as slog's default and returns
// it with the file. The caller must close the file.
func Open(cfg Config) (*slog.Logger, *os.File, error) {
	path := cfg.File
	if path == "" {
		dir, err := stateDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to locate log directory: %w", err)
		}
		path = filepath.Join(dir, "arena.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(f, cfg)
	slog.SetDefault(l)
	return l, f, nil
}

// stateDir follows the XDG Base Directory layout: $XDG_STATE_HOME/stick-battle-arena,
// defaulting to ~/.local/state/stick-battle-arena.
func stateDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName), nil
}

type ctxKey string

const matchIDKey ctxKey = "matchID"

// NewMatchID creates a new UUID for tagging one match's log lines.
func NewMatchID() string {
	return uuid.NewString()
}

// WithMatchID returns a new context containing the match ID.
func WithMatchID(ctx context.Context, matchID string) context.Context {
	return context.WithValue(ctx, matchIDKey, matchID)
}

// MatchIDFromContext extracts the match ID from the context, if present.
func MatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(matchIDKey).(string)
	return id, ok
}

// FromContext returns a logger that includes the match_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := MatchIDFromContext(ctx); ok {
		return slog.Default().With("match_id", id)
	}
	return slog.Default()
}

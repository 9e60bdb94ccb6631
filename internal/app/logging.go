package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// openLogger creates a text logger appending to path. The TUI owns the
// terminal, so logs never go to stderr; when the file cannot be opened the
// returned logger discards everything. The cleanup func is always non-nil.
func openLogger(path string, level slog.Level) (*slog.Logger, func()) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.DiscardHandler), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { _ = file.Close() }
}

// parseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func parseLevel(name string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

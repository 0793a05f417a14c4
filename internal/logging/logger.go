package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a structured logger appropriate for the environment.
// Production uses JSON format, development uses human-readable text. An
// explicit level ("debug", "info", "warn", "error") overrides the
// environment default of info in production and debug elsewhere.
func NewLogger(env, level string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env != "production" {
		opts.Level = slog.LevelDebug
	}

	if lvl, ok := parseLevel(level); ok {
		opts.Level = lvl
	}

	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}

	return 0, false
}

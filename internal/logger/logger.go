// Package logger configures the default slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables that override the configured level and format.
const (
	EnvLevel  = "RACKPLAN_LOG_LEVEL"
	EnvFormat = "RACKPLAN_LOG_FORMAT"
)

// Init installs a default slog logger writing to w.
// level is one of debug, info, warn, error (default info); format is text
// or json (default text). Non-empty environment overrides win over both.
func Init(level, format string, w io.Writer) *slog.Logger {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	if env := os.Getenv(EnvFormat); env != "" {
		format = env
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

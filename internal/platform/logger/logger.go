// Package logger provides structured logging functionality for the
// application, built on log/slog with a JSON handler.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// contextKey is a private type for context keys defined in this package.
type contextKey struct{}

var loggerKey = contextKey{}

// Setup initializes the application's logging system. It creates a
// structured JSON logger writing to stdout at the given level and sets it as
// the default logger.
//
// An unknown level falls back to info with a warning on stderr.
func Setup(level string) *slog.Logger {
	parsed, ok := parseLevel(level)
	if !ok {
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
		parsed = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parsed})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// WithContext returns a context carrying the given logger. Handlers attach
// request-scoped attributes (like trace IDs) this way.
func WithContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger stored in ctx, falling back to the
// process default when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

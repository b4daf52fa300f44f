// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog or zap; callers only see Logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "method", "GET", "status", 200)
type Logger interface {
	// Debug logs verbose diagnostics (request traces and the like).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Level is a backend-neutral log level name.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel accepts the usual spellings ("debug", "INFO", "warning", ...).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// New builds a Logger for the named backend ("slog" or "zap") writing to w.
func New(backend string, level Level, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", "slog":
		return NewSlogText(w, level), nil
	case "zap":
		return NewZapLogger(w, level), nil
	}
	return nil, fmt.Errorf("unknown log backend %q", backend)
}

// Nop returns a Logger that drops everything. Handy in tests.
func Nop() Logger {
	return NewSlogText(io.Discard, LevelError)
}

// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog (JSON/text) and zerolog (console).
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "plan generated", "user_id", id, "subject", subject)
type Logger interface {
	// Debug logs verbose diagnostics.
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

// Supported output formats for New.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// New builds a Logger writing to w in the requested format. Unknown formats
// fall back to JSON.
func New(format string, w io.Writer) Logger {
	switch strings.ToLower(format) {
	case FormatConsole:
		return NewConsoleLogger(w)
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)))
	default:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
	}
}

// Nop discards everything. Handy for tests and optional collaborators.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }

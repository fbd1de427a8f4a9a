/*
logger.go - zerolog setup for the loan book server

The server logs as console text by default and as JSON lines with -log-json.
Handlers get a request-scoped logger through the request context; code that
runs without one (tests, the monitor) gets a disabled logger.
*/
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

// LoggerKey holds the request-scoped logger in a context.
const LoggerKey ctxKey = "logger"

// New returns a human-readable logger on stdout.
func New() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Caller().Logger()
}

// NewWithWriter returns a JSON-lines logger on w.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// WithLevel applies a -log-level value. Empty or unknown names mean info.
func WithLevel(log zerolog.Logger, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return log.Level(lvl)
}

func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, log)
}

// FromContext returns the request logger, or zerolog.Nop() outside a request.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}

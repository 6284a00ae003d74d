package observe

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for constructing a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger with the given fields attached to every entry.
	With(fields ...Field) Logger
}

// zeroLogger is a Logger backed by zerolog.
type zeroLogger struct {
	zl zerolog.Logger
}

// NewLogger creates a JSON structured logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a structured logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, fields ...Field) { l.log(l.zl.Debug(), msg, fields) }
func (l *zeroLogger) Info(msg string, fields ...Field)  { l.log(l.zl.Info(), msg, fields) }
func (l *zeroLogger) Warn(msg string, fields ...Field)  { l.log(l.zl.Warn(), msg, fields) }
func (l *zeroLogger) Error(msg string, fields ...Field) { l.log(l.zl.Error(), msg, fields) }

func (l *zeroLogger) With(fields ...Field) Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		if isRedactedField(f.Key) {
			ctx = ctx.Str(f.Key, redacted)
			continue
		}
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

func (l *zeroLogger) log(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		if isRedactedField(f.Key) {
			ev = ev.Str(f.Key, redacted)
			continue
		}
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}

const redacted = "[REDACTED]"

// isRedactedField returns true if the field should be redacted.
func isRedactedField(key string) bool {
	switch strings.ToLower(key) {
	case "password", "secret", "token", "access_token", "api_key", "apikey",
		"client_secret", "credential", "authorization":
		return true
	}
	return false
}

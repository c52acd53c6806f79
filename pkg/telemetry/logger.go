package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with component scoping and context embedding.
type Logger struct {
	zlog zerolog.Logger
}

type loggerContextKey struct{}

// NewLogger creates a logger at the given level. Console selects the
// human-readable writer; otherwise output is JSON.
func NewLogger(level string, console bool) *Logger {
	var w io.Writer = os.Stderr
	if console {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	zlog := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{zlog: zlog}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component creates a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", name).Logger()}
}

// Debug starts a debug-level event.
func (l *Logger) Debug() *zerolog.Event { return l.zlog.Debug() }

// Info starts an info-level event.
func (l *Logger) Info() *zerolog.Event { return l.zlog.Info() }

// Warn starts a warn-level event.
func (l *Logger) Warn() *zerolog.Event { return l.zlog.Warn() }

// Error starts an error-level event.
func (l *Logger) Error() *zerolog.Event { return l.zlog.Error() }

// WithContext embeds the logger in the context.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext extracts a logger from the context, falling back to a no-op
// logger when none is present.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*Logger); ok {
		return l
	}
	return NewNopLogger()
}

// Package logger provides a thin wrapper around zerolog.Logger used by every
// rnconfig component.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Components receive a child logger tagged with their name via Component.
package logger

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown log format")

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options configures New.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Empty means "info".
	Level string

	// Format is FormatConsole or FormatJSON. Empty means FormatConsole.
	Format string

	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// New constructs a *Logger writing to w.
//
// Console output is meant for humans running the CLI. JSON output is one
// object per line with a "time" field.
func New(w io.Writer, opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var out io.Writer
	switch opts.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    opts.NoColor,
			TimeFormat: time.TimeOnly,
		}
	case FormatJSON:
		out = w
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl}, nil
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Component returns a child logger tagged with the component name. The
// parent is not affected.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

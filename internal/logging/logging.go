// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the shared logger. It discards output until Init is called so packages
// can log unconditionally, including from tests.
var Logger = zerolog.New(io.Discard)

// Init configures Logger for the named service, writing to stdout. Unknown levels
// fall back to info. pretty switches from JSON lines to human-readable console output.
func Init(service string, level string, pretty bool) {
	InitTo(os.Stdout, service, level, pretty)
}

// InitTo is Init with an explicit destination. The CLI logs to stderr so tables on
// stdout stay clean.
func InitTo(w io.Writer, service string, level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w}
	}

	Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// SetOutput redirects Logger to w, keeping JSON formatting. Used by tests to capture logs.
func SetOutput(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

// Package logger builds the zerolog.Logger used across the service.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger configured for env.
//
// dev (and anything unrecognised) writes human-readable console output at
// debug level. staging and prod write JSON, at debug and info level
// respectively. A non-empty level overrides the env default.
func New(env, level string) zerolog.Logger {
	return newWithWriter(os.Stdout, env, level)
}

func newWithWriter(w io.Writer, env, level string) zerolog.Logger {
	var (
		out      io.Writer
		minLevel zerolog.Level
	)

	switch env {
	case "prod":
		out, minLevel = w, zerolog.InfoLevel
	case "staging":
		out, minLevel = w, zerolog.DebugLevel
	default:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		minLevel = zerolog.DebugLevel
	}

	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			minLevel = parsed
		}
	}

	return zerolog.New(out).
		Level(minLevel).
		With().
		Timestamp().
		Str("env", env).
		Logger()
}

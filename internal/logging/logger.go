// Package logging builds the session logger. The TUI owns the
// terminal, so log output goes to a file (or is disabled entirely),
// never to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunxfancy/ExeViewer/internal/config"
)

// New creates a zerolog logger writing to output at the given level.
func New(level string, output io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// FromConfig opens the configured log file and returns the logger
// plus a closer for it. When logging is disabled it returns a no-op
// logger and a nil closer.
func FromConfig(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if !cfg.Enabled {
		return zerolog.Nop(), nil, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(cfg.Level, f), f, nil
}

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config string to a zerolog level. Empty means warn.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.WarnLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

// New builds a timestamped logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole is New over a human-readable console writer.
func NewConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w}, level)
}

// Open returns a logger for the given settings and a func that releases it.
// With a file, records are JSON lines appended to it. Without one, records go
// to fallback through the console writer, or nowhere when fallback is nil.
func Open(level, file string, fallback io.Writer) (zerolog.Logger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if file == "" {
		if fallback == nil {
			return zerolog.Nop(), func() {}, nil
		}
		return NewConsole(fallback, lvl), func() {}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	return New(f, lvl), func() { f.Close() }, nil
}

// Component tags every record of l with the subsystem name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

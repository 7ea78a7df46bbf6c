package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how diagnostics are rendered.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output string // stderr, stdout, or a file path
}

// New builds the diagnostics logger. Console format keeps one human-readable line per event.
// The returned close func releases the log file when Output is a path and is a no-op otherwise.
func New(cfg Config) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}

	switch cfg.Output {
	case "", "stderr":
		return NewWithWriter(os.Stderr, cfg.Format, level), noop, nil
	case "stdout":
		return NewWithWriter(os.Stdout, cfg.Format, level), noop, nil
	}

	file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("could not open log file: %w", err)
	}
	return NewWithWriter(file, cfg.Format, level), file.Close, nil
}

// NewWithWriter builds a logger on an arbitrary writer, used by tests to capture diagnostics.
func NewWithWriter(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.DateTime,
			NoColor:    true,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

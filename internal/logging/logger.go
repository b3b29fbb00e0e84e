// Package logging holds the process-wide zerolog logger.
//
// Commands call Init once after configuration is read; until then a console
// logger at info level writes to stderr. Always finish an event with Msg or
// Send, otherwise nothing is written:
//
//	logging.Warn().Err(err).Str("source", src).Msg("load failed")
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Config selects the level and output format.
type Config struct {
	// Level is one of trace, debug, info, warn, error or disabled.
	Level string

	// Format is console (human readable) or json.
	Format string

	// Output defaults to os.Stderr so that command output on stdout stays
	// clean for piping.
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "console", Output: os.Stderr}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger(DefaultConfig())
}

// Init reconfigures the global logger. It returns an error for an unknown
// level or format and leaves the logger unchanged.
func Init(cfg Config) error {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "console"
	}
	if _, err := ParseLevel(cfg.Level); err != nil {
		return err
	}
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("unknown log format %q (expected console or json)", cfg.Format)
	}

	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
	return nil
}

// initLogger must be called with mu held (or from init).
func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}
	log = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// ParseLevel converts a level name, case-insensitively, to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With starts a child logger with extra fields:
//
//	l := logging.With().Str("component", "loader").Logger()
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// NewTestLogger returns a JSON logger writing to w, for capturing log output
// in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Package logging configures log/slog for the mu tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Global logger instance
var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Config holds logger configuration
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a logger without installing it.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) *slog.Logger {
	defaultLogger = New(cfg)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// Logger returns the global logger. It discards output until Init is called.
func Logger() *slog.Logger {
	return defaultLogger
}

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// Front-end logging helpers

// LogPhase logs the start of a front-end phase
func LogPhase(l *slog.Logger, phase string) {
	l.Debug("Starting phase", "phase", phase)
}

// LogLexing logs lexing activity
func LogLexing(l *slog.Logger, file string, tokenCount int) {
	l.Debug("Lexing complete", "file", file, "tokens", tokenCount)
}

// LogParsing logs parsing activity
func LogParsing(l *slog.Logger, file string, nodeCount int) {
	l.Debug("Parsing complete", "file", file, "nodes", nodeCount)
}

// LogError logs a front-end error
func LogError(l *slog.Logger, phase, file string, line int, msg string) {
	l.Error("Front-end error",
		"phase", phase,
		"file", file,
		"line", line,
		"message", msg)
}

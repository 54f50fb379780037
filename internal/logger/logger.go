// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// Configure replaces the global logger with a text or JSON handler writing to w.
func Configure(w io.Writer, level slog.Level, json bool) {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	Logger = slog.New(slog.NewTextHandler(w, opts))
}

// Printf adapts the global logger to the Debugf/Infof/Warnf/Errorf interface
// the calculation engine logs through.
type Printf struct{}

func (Printf) Debugf(format string, args ...any) { Logger.Debug(fmt.Sprintf(format, args...)) }
func (Printf) Infof(format string, args ...any)  { Logger.Info(fmt.Sprintf(format, args...)) }
func (Printf) Warnf(format string, args ...any)  { Logger.Warn(fmt.Sprintf(format, args...)) }
func (Printf) Errorf(format string, args ...any) { Logger.Error(fmt.Sprintf(format, args...)) }

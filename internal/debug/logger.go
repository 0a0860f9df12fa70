// Package debug provides debug logging functionality using log/slog
package debug

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
)

// EnvVar enables debug logging when set to a true value.
const EnvVar = "PRISMA_CASCADE_DEBUG"

var (
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	enabled bool
	mu      sync.RWMutex
)

// Init initializes the debug logger.
// If enable is true, debug logs are written to os.Stderr, otherwise discarded.
func Init(enable bool) {
	InitWriter(enable, os.Stderr)
}

// InitWriter is Init with an explicit destination.
func InitWriter(enable bool, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// FromEnv reports whether EnvVar asks for debug output.
func FromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvVar))
	return err == nil && v
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger { return current().With(args...) }

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger { return current() }

// Package logger writes structured logs to a file, since the terminal UI owns
// stdout and stderr while it runs.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is used when Init is never called.
const DefaultLogPath = "/tmp/chatdeck.log"

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	current  *slog.Logger
	logFile  *os.File
)

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and makes it the process log. Calling Init
// again replaces the previous file.
func Init(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	current = newLogger(f)
	current.Info("logger initialized", "path", path)
	return nil
}

// Get returns the process logger. Without Init it falls back to
// DefaultLogPath, and to discarding output if that cannot be opened.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return current
	}
	f, err := os.OpenFile(DefaultLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file %s: %v\n", DefaultLogPath, err)
		current = newLogger(io.Discard)
		return current
	}
	logFile = f
	current = newLogger(f)
	return current
}

// WithComponent returns the process logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	current = nil
	return err
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

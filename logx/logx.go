// Package logx wraps log/slog with the process-wide default logger
// this module uses for the one condition it logs outside an error
// return: the Init-time timestamp-overflow warning.
package logx

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	current *slog.Logger
)

func init() {
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDefault replaces the process-wide logger, for embedding this
// module into an application with its own slog handler.
func SetDefault(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// With returns a logger scoped with the given attributes, built from
// the current default.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

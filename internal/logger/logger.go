// Package logger owns the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init initializes the global structured logger at the given level.
func Init(level string) {
	once.Do(func() {
		opts := &slog.HandlerOptions{Level: parseLevel(level)}
		log = slog.New(slog.NewTextHandler(os.Stdout, opts))
		slog.SetDefault(log)
	})
}

// L returns the global logger instance.
func L() *slog.Logger {
	if log == nil {
		Init("info")
	}
	return log
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package log holds the slog setup shared by the menu and the levels.
package log

import (
	"io"
	"log/slog"
	"os"
)

type LoggerConfiguration struct {
	LogLevel slog.Level
	Writer   io.Writer
}

// NewLogger builds a JSON logger with source locations. A nil Writer
// logs to stderr.
func NewLogger(config *LoggerConfiguration) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     config.LogLevel,
		AddSource: true,
	}))
}

func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// G returns the global logger.
func G() *slog.Logger {
	return slog.Default()
}

// Menu scopes the global logger to the menu.
func Menu() *slog.Logger {
	return G().With("component", "menu")
}

// Game scopes the global logger to one level.
func Game(name string) *slog.Logger {
	return G().With("component", "game", "game", name)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/yoyoarcade/yoyo/internal/log"
)

// parseLogLevel maps debug, info, warn and error (any case) to a level.
// Anything else is info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// getLogPath prefers the configured path and falls back to the XDG state
// directory when it is empty or not writable.
func getLogPath(customPath string) (string, error) {
	if customPath != "" {
		customPath = expandHome(customPath)
		if err := os.MkdirAll(filepath.Dir(customPath), 0755); err == nil {
			f, err := os.OpenFile(customPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
			if err == nil {
				_ = f.Close()
				return customPath, nil
			}
		}
		fmt.Fprintf(os.Stderr, "Warning: could not use custom log path %s, falling back to XDG default\n", customPath)
	}

	logPath, err := xdg.StateFile("yoyo/yoyo.log")
	if err != nil {
		return "", fmt.Errorf("could not get log path: %w", err)
	}
	return logPath, nil
}

// setupLogging points the default slog logger at the log file. The caller
// closes the returned file.
func setupLogging(level slog.Level, customLogPath string) (*os.File, error) {
	logPath, err := getLogPath(customLogPath)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	log.SetDefault(log.NewLogger(&log.LoggerConfiguration{
		LogLevel: level,
		Writer:   f,
	}))
	log.G().Info("yoyo logging initialized", "log_path", logPath, "log_level", level.String())
	return f, nil
}

package config

import (
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is consulted when the verbose flag is not set.
const EnvLogLevel = "VELOXBUILD_LOG_LEVEL"

// ParseLogLevel resolves the effective slog level. The verbose flag wins,
// then VELOXBUILD_LOG_LEVEL, then info.
func ParseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alkime/dictate/internal/config"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	return SetupLoggerTo(cfg, os.Stderr)
}

// SetupLoggerTo is SetupLogger with an explicit sink. The TUI redirects
// logs to a file so slog output does not corrupt the terminal.
func SetupLoggerTo(cfg *config.Config, w io.Writer) *slog.Logger {
	// Determine log level
	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

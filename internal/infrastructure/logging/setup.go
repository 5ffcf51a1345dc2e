package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

// ParseLevel maps a configuration value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Setup builds the console logger from cfg and installs it as the default.
func Setup(cfg config.LogConfig, w io.Writer) (*slog.Logger, *ConsoleHandler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	handler := NewConsoleHandler(w, Options{Level: level, Color: cfg.Color})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, handler, nil
}

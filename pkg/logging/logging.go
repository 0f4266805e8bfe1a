// Package logging configures structured logging for orderlines.
//
// Text output is colored with tint and goes to stderr; JSON output goes to
// stdout for log shippers.
//
// Usage:
//
//	logging.SetupWith(cfg.LogLevel, cfg.LogFormat)
//
// The level and format come from LOG_LEVEL and LOG_FORMAT via internal/config.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// SetupWith installs a default logger with the given level and format.
func SetupWith(level slog.Level, format string) {
	var w io.Writer = os.Stderr
	if strings.EqualFold(format, "json") {
		w = os.Stdout
	}
	slog.SetDefault(New(w, level, format))
}

// New builds a logger writing to w. format is "json" or anything else for text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

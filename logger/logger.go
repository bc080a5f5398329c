// Package logger wires slog to a tint handler for human-readable output.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Init installs the default slog logger. level comes from the LOG_LEVEL
// environment variable in main; empty means info.
func Init(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
	})
	slog.SetDefault(slog.New(handler))
}

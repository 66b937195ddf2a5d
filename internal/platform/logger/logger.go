package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns the process-wide structured logger writing JSON to stdout.
// LOG_LEVEL selects debug, info (default), warn or error.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter builds a JSON logger on w at the given level.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})).
		With("service", "legatia")
}

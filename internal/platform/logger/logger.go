package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON to stdout so log
// collectors can parse records without extra configuration.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

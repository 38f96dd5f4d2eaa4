package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON output so log
// aggregation can index request_id and case_id fields.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

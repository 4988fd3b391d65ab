package telemetry

import (
	"fmt"
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger from a textual level
// ("debug", "info", "warn", "error"), writing structured text to
// stderr. slog's handler already serializes concurrent writes from
// multiple goroutines internally, which is why no separate output
// mutex wraps it here — one is only needed when the underlying writer
// doesn't guarantee that itself.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})

	return slog.New(handler), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("telemetry: unknown log level %q", level)
	}
}

// Component returns a child logger tagged with "component", so log lines
// from the reactor, the LF pool, and each server front-end are
// distinguishable without callers repeating the attribute at every call
// site.
func Component(log *slog.Logger, name string) *slog.Logger {
	return log.With("component", name)
}

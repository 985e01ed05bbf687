package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer.
// A nil logger falls back to slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
// Failures are logged at warn level, everything else at debug
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventFailed {
		level = slog.LevelWarn
	}
	lo.logger.Log(context.Background(), level, "run_lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"run_seq", event.RunSeq,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}

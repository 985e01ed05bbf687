package engine

import "time"

// EventType represents different lifecycle phases of an analysis run
type EventType string

const (
	EventLoadStart      EventType = "load_start"
	EventLoadEnd        EventType = "load_end"
	EventStatsStart     EventType = "stats_start"
	EventStatsEnd       EventType = "stats_end"
	EventAggregateStart EventType = "aggregate_start"
	EventAggregateEnd   EventType = "aggregate_end"
	EventNormalizeStart EventType = "normalize_start"
	EventNormalizeEnd   EventType = "normalize_end"
	EventFailed         EventType = "failed"
)

// Event represents a lifecycle event of an analysis run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	RunSeq    uint64      // Process-local run number, for ordering runs in logs
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (path, row count, bands, error)
}

// Observer interface for event subscribers
// Observers receive events at major phases of every run
type Observer interface {
	OnEvent(event Event)
}

package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// runCounter numbers runs within the process, for readable log ordering
var runCounter uint64

// Run identifies one analysis request from start to finish
type Run struct {
	ID        string    // Unique run identifier (UUID)
	Seq       uint64    // Process-local sequence number
	Operation string    // "load", "stats", "aggregate", "normalize"
	Path      string    // Dataset being analyzed
	StartTime time.Time // When the run began
}

// newRun creates a new run with a unique ID
func newRun(operation, path string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&runCounter, 1),
		Operation: operation,
		Path:      path,
		StartTime: time.Now(),
	}
}

// Elapsed returns the time since the run began
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartTime)
}

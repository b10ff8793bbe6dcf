package models

import (
	"time"
)

// Range is a linear discretization of [Min, Max) into Steps evenly spaced samples
type Range struct {
	Min   float64 `json:"min" doc:"Lower bound (inclusive)"`
	Max   float64 `json:"max" doc:"Upper bound (never emitted)"`
	Steps int     `json:"steps" minimum:"1" maximum:"10000" doc:"Number of samples"`
}

// Value returns the i-th sample of the range.
// Steps must be positive; Max below Min yields a reversed sequence.
func (r Range) Value(i int) float64 {
	return r.Min + float64(i)*(r.Max-r.Min)/float64(r.Steps)
}

// GridPoint is a single (r, z) coordinate pair
type GridPoint struct {
	R float64 `json:"r"`
	Z float64 `json:"z"`
}

// Grid run statuses
const (
	StatusPending   = "pending"
	StatusWriting   = "writing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusDeleted   = "deleted" // Completed, but the stored file has been removed
)

// GridRun represents one grid generation tracked by the service (for internal use)
type GridRun struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	R           Range      `json:"r"`
	Z           Range      `json:"z"`
	ObjectKey   *string    `json:"object_key,omitempty"`
	LineCount   int64      `json:"line_count"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

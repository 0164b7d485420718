package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the status of an application run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one full search-and-apply session
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SearchTerms []string   `json:"search_terms"`
	Status      RunStatus  `json:"status"`
	Stats       RunStats   `json:"stats"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// NewRun creates a Run in the running state
func NewRun(terms []string) *Run {
	return &Run{
		ID:          uuid.New(),
		SearchTerms: terms,
		Status:      RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
}

// Finish marks the run terminal with its final counters
func (r *Run) Finish(status RunStatus, stats RunStats) {
	now := time.Now().UTC()
	r.Status = status
	r.Stats = stats
	r.FinishedAt = &now
}

package database

import (
	"time"
)

type RunStatus string

const (
	RunStatusPublished RunStatus = "published"
	RunStatusEmpty     RunStatus = "empty"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one pipeline pass for one vertical. Feed items themselves
// are never persisted; only run bookkeeping is.
type Run struct {
	ID           int64
	Vertical     string
	RunDate      string // YYYY-MM-DD
	Status       RunStatus
	ItemsFetched int
	ItemsUsed    int
	WordCount    int
	Error        string
	CreatedAt    time.Time
}

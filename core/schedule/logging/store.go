package logging

import (
	"context"
	"time"
)

// OutcomeRecord is one persisted session outcome. Day and StartTime are set
// only for scheduled sessions.
type OutcomeRecord struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	Department string    `json:"department"`
	Semester   string    `json:"semester"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Faculty    string    `json:"faculty"`
	Room       string    `json:"room"`
	Status     string    `json:"status"`
	Day        string    `json:"day,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
}

// Query defines filters for retrieving records. Zero fields match anything.
type Query struct {
	RunID      string
	Department string
	Status     string
	Since      time.Time
}

// Matches reports whether the record satisfies every set filter.
func (q Query) Matches(r OutcomeRecord) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.Department != "" && r.Department != q.Department {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if !q.Since.IsZero() && r.Timestamp.Before(q.Since) {
		return false
	}
	return true
}

// Store persists OutcomeRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec OutcomeRecord) error
	Query(ctx context.Context, q Query) ([]OutcomeRecord, error)
	Close() error
}

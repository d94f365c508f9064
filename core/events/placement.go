package events

import (
	"time"

	"github.com/campusplan/timegrid/core/model"
)

// PlacementEvent is published for each session placement attempt that ran to
// completion, successful or not.
type PlacementEvent struct {
	Department string
	Semester   string
	Code       string
	Label      string
	Kind       model.SessionKind
	Placed     bool
	Day        int
	Slot       int
	// Fallback is true when the placement came out of the randomized phase.
	Fallback bool
}

// ElectiveEvent is published when an elective course is skipped and recorded
// as not scheduled.
type ElectiveEvent struct {
	Department string
	Semester   string
	Code       string
}

// GridEvent is published once per department/semester grid after it has been
// created and lunch-seeded.
type GridEvent struct {
	Key string
}

// LunchEvent is published when a lunch block is seeded into a grid.
type LunchEvent struct {
	GridKey string
	Day     int
	Slot    int
}

// RunEvent is published at the start and end of a scheduling run. Duration is
// set only on the finishing event.
type RunEvent struct {
	RunID    string
	Finished bool
	Courses  int
	Duration time.Duration
}

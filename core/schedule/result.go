package schedule

import "github.com/campusplan/timegrid/core/timegrid"

// Status is the final state of one session request.
type Status int

const (
	// StatusScheduled means the session was committed to a grid.
	StatusScheduled Status = iota
	// StatusFailed means the attempt budget was exhausted.
	StatusFailed
	// StatusNotScheduled marks elective sessions, which never reach the
	// scheduler.
	StatusNotScheduled
)

// String renders the status as it appears in reports.
func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusFailed:
		return "Failed"
	case StatusNotScheduled:
		return "Not Scheduled"
	default:
		return "Unknown"
	}
}

// SessionResult is the outcome record of one session request, as handed to
// reporting and the outcome store. Day and Slot are valid only when the
// status is StatusScheduled; otherwise Day is -1.
type SessionResult struct {
	Department string
	Semester   string
	Code       string
	Name       string
	Label      string
	Faculty    string
	Room       string
	Status     Status
	Day        int
	Slot       int
	Fallback   bool
}

// DeptStats tallies outcomes for one department.
type DeptStats struct {
	Scheduled int
	Failed    int
}

// RunStats aggregates a whole scheduling run.
type RunStats struct {
	TotalSessions int
	Scheduled     int
	Failed        int
	Electives     int
	ByDepartment  map[string]DeptStats
}

// SuccessRate returns the scheduled fraction in percent, or 0 when nothing
// was attempted.
func (s RunStats) SuccessRate() float64 {
	if s.TotalSessions == 0 {
		return 0
	}
	return float64(s.Scheduled) / float64(s.TotalSessions) * 100
}

// RunResult is everything a scheduling run produces: one outcome per session
// request, the filled grids in processing order, and the aggregate stats.
type RunResult struct {
	RunID    string
	Outcomes []SessionResult
	Grids    []*timegrid.Grid
	Stats    RunStats
}

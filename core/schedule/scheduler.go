package schedule

import (
	"math/rand"
	"sort"

	"github.com/campusplan/timegrid/core/logger"
	"github.com/campusplan/timegrid/core/timegrid"
)

// Outcome reports where a request was placed, if anywhere. Exhausting the
// attempt budget is not an error: the zero Outcome means the request failed.
type Outcome struct {
	Placed bool
	Day    int
	Slot   int
	// Fallback is true when the slot came out of the randomized phase.
	Fallback bool
}

// Scheduler places session requests onto timetable grids. The first phase is
// a deterministic greedy scan biased toward the least-loaded day; when it
// finds nothing the scheduler falls back to bounded uniform sampling of
// (day, slot) pairs. Placement attempts never backtrack: once a session is
// committed it stays.
type Scheduler struct {
	cal *timegrid.Calendar
	rng *rand.Rand
	log logger.Logger
}

// NewScheduler creates a Scheduler. The random source drives the fallback
// phase only; seeding it makes runs reproducible.
func NewScheduler(cal *timegrid.Calendar, rng *rand.Rand, log logger.Logger) *Scheduler {
	return &Scheduler{cal: cal, rng: rng, log: log}
}

// Place attempts to commit the request onto the grid. budget bounds the
// randomized phase; the greedy phase always runs. On success both the grid
// and the availability index are updated atomically for the whole slot range.
func (s *Scheduler) Place(req Request, grid *timegrid.Grid, avail *timegrid.AvailabilityIndex, budget int) Outcome {
	// Phase 1: least-loaded day first, earliest feasible slot wins. The sort
	// is stable so equal loads keep the original day order.
	days := make([]int, timegrid.NumDays)
	for d := range days {
		days[d] = d
	}
	sort.SliceStable(days, func(i, j int) bool {
		return grid.DayLoad(days[i]) < grid.DayLoad(days[j])
	})

	for _, day := range days {
		for start := 0; start+req.Span <= s.cal.NumSlots(); start++ {
			if s.feasible(req, grid, avail, day, start) {
				s.commit(req, grid, avail, day, start)
				return Outcome{Placed: true, Day: day, Slot: start}
			}
		}
	}

	// Phase 2: bounded uniform sampling.
	maxStart := s.cal.NumSlots() - req.Span
	if maxStart < 0 {
		return Outcome{}
	}
	for attempt := 0; attempt < budget; attempt++ {
		day := s.rng.Intn(timegrid.NumDays)
		start := s.rng.Intn(maxStart + 1)
		if s.feasible(req, grid, avail, day, start) {
			s.commit(req, grid, avail, day, start)
			return Outcome{Placed: true, Day: day, Slot: start, Fallback: true}
		}
	}
	return Outcome{}
}

// feasible checks the whole slot range of a candidate before any mutation:
// the range must fit the day, hold no session, avoid the morning break, and
// clash with no prior commitment of a tracked faculty member or room.
// Flexible faculty assignments and placeholder rooms skip the index checks.
func (s *Scheduler) feasible(req Request, grid *timegrid.Grid, avail *timegrid.AvailabilityIndex, day, start int) bool {
	if start < 0 || start+req.Span > s.cal.NumSlots() {
		return false
	}
	if !grid.Free(day, start, req.Span) {
		return false
	}
	for i := 0; i < req.Span; i++ {
		if s.cal.IsMorningBreak(start + i) {
			return false
		}
	}
	if fa := req.Course.Faculty; !fa.Flexible() && len(fa.Names) == 1 {
		if !avail.FacultyFree(fa.Names[0], day, start, req.Span) {
			return false
		}
	}
	if room := req.Course.Room; !room.Placeholder {
		if !avail.RoomFree(room.Raw, day, start, req.Span) {
			return false
		}
	}
	return true
}

// commit reserves every listed faculty name and the room, flexible or not,
// and writes the session cells. Tracking flexible resources keeps their usage
// visible to reporting even though conflicts are not enforced against them.
func (s *Scheduler) commit(req Request, grid *timegrid.Grid, avail *timegrid.AvailabilityIndex, day, start int) {
	avail.ReserveFaculty(req.Course.Faculty.Names, day, start, req.Span)
	avail.ReserveRoom(req.Course.Room.Raw, day, start, req.Span)
	if err := grid.Place(day, start, timegrid.Session{
		Kind:    req.Kind,
		Label:   req.Label,
		Code:    req.Course.Code,
		Name:    req.Course.Name,
		Faculty: req.Course.Faculty.Raw,
		Room:    req.Course.Room.Raw,
		Span:    req.Span,
	}); err != nil {
		// feasible() ran on the same range, so this cannot happen.
		s.log.Errorf("commit after feasibility check failed: %v", err)
	}
}

package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/campusplan/timegrid/core/events"
	"github.com/campusplan/timegrid/core/logger"
	"github.com/campusplan/timegrid/core/model"
	"github.com/campusplan/timegrid/core/schedule/logging"
	"github.com/campusplan/timegrid/core/timegrid"
	"github.com/campusplan/timegrid/internal/eventbus"
)

// Manager runs a full scheduling pass: it owns the shared availability index,
// creates and lunch-seeds one grid per department/semester, expands courses
// into session requests and drives the scheduler. A Manager is single-use;
// build a new one per run.
type Manager struct {
	cal   *timegrid.Calendar
	cfg   Config
	sched *Scheduler
	rng   *rand.Rand
	log   logger.Logger
	bus   eventbus.EventBus
	store logging.Store
}

// NewManager creates a manager. bus may be nil when no one listens.
func NewManager(cal *timegrid.Calendar, cfg Config, log logger.Logger, bus eventbus.EventBus) (*Manager, error) {
	if cal == nil || log == nil {
		return nil, fmt.Errorf("schedule: nil parameter provided to NewManager")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Manager{
		cal:   cal,
		cfg:   cfg,
		sched: NewScheduler(cal, rng, log),
		rng:   rng,
		log:   log,
		bus:   bus,
	}, nil
}

// SetOutcomeStore configures the store used to persist session outcomes.
func (m *Manager) SetOutcomeStore(store logging.Store) { m.store = store }

// group is one department+semester batch of courses sharing a grid.
type group struct {
	department string
	semester   string
	courses    []model.Course
	grid       *timegrid.Grid
}

// Run schedules every course and returns the per-session outcomes, the filled
// grids and aggregate statistics. Failures to place individual sessions never
// abort the run.
func (m *Manager) Run(ctx context.Context, courses []model.Course) (*RunResult, error) {
	started := time.Now()
	res := &RunResult{
		RunID: uuid.New().String(),
		Stats: RunStats{ByDepartment: make(map[string]DeptStats)},
	}
	m.publish(events.RunEvent{RunID: res.RunID, Courses: len(courses)})
	m.log.Infof("scheduling run %s: %d courses", res.RunID, len(courses))

	groups := groupCourses(courses)

	// Every grid is created and lunch-seeded before any course placement so
	// a lunch block can never be displaced by a session.
	avail := timegrid.NewAvailabilityIndex()
	for _, g := range groups {
		g.grid = timegrid.NewGrid(g.department, g.semester, m.cal)
		starts := SeedLunch(g.grid, m.cal, m.cfg.Spans.Lunch, m.rng, m.log)
		for day, slot := range starts {
			if slot >= 0 {
				m.publish(events.LunchEvent{GridKey: g.grid.Key(), Day: day, Slot: slot})
			}
		}
		m.publish(events.GridEvent{Key: g.grid.Key()})
		res.Grids = append(res.Grids, g.grid)
	}

	for _, g := range groups {
		m.runGroup(ctx, g, avail, res)
	}

	m.publish(events.RunEvent{
		RunID:    res.RunID,
		Finished: true,
		Courses:  len(courses),
		Duration: time.Since(started),
	})
	m.log.Infof("run %s done: %d scheduled, %d failed, %d electives skipped",
		res.RunID, res.Stats.Scheduled, res.Stats.Failed, res.Stats.Electives)
	return res, nil
}

// runGroup schedules one department/semester batch. Courses carrying both a
// lab and taught components go first, then lab-only courses, then the rest;
// this mirrors how contended lab rooms are claimed before lighter sessions.
func (m *Manager) runGroup(ctx context.Context, g *group, avail *timegrid.AvailabilityIndex, res *RunResult) {
	budget := m.cfg.DepartmentBudget(g.department)
	var combined, labOnly, taughtOnly []model.Course
	for _, c := range g.courses {
		if c.Elective {
			m.recordElective(ctx, c, res)
			continue
		}
		switch {
		case c.HasLab() && c.HasTaught():
			combined = append(combined, c)
		case c.HasLab():
			labOnly = append(labOnly, c)
		default:
			taughtOnly = append(taughtOnly, c)
		}
	}

	for _, c := range combined {
		reqs := ExpandCourse(c, m.cfg.Spans)
		labFailed := false
		for _, req := range reqs {
			b := budget
			if req.Kind != model.KindLab && labFailed && m.cfg.IsPriority(c.Department) {
				b = budget * m.cfg.LabFailureFactor
			}
			out := m.place(ctx, req, g.grid, avail, b, res)
			if req.Kind == model.KindLab && !out.Placed {
				labFailed = true
			}
		}
	}
	for _, c := range append(labOnly, taughtOnly...) {
		for _, req := range ExpandCourse(c, m.cfg.Spans) {
			m.place(ctx, req, g.grid, avail, budget, res)
		}
	}
}

// place runs one request through the scheduler and records its outcome.
func (m *Manager) place(ctx context.Context, req Request, grid *timegrid.Grid, avail *timegrid.AvailabilityIndex, budget int, res *RunResult) Outcome {
	out := m.sched.Place(req, grid, avail, budget)

	sr := SessionResult{
		Department: req.Course.Department,
		Semester:   req.Course.Semester,
		Code:       req.Course.Code,
		Name:       req.Course.Name,
		Label:      req.Label,
		Faculty:    req.Course.Faculty.Raw,
		Room:       req.Course.Room.Raw,
		Day:        -1,
	}
	res.Stats.TotalSessions++
	dept := res.Stats.ByDepartment[sr.Department]
	if out.Placed {
		sr.Status = StatusScheduled
		sr.Day, sr.Slot, sr.Fallback = out.Day, out.Slot, out.Fallback
		res.Stats.Scheduled++
		dept.Scheduled++
	} else {
		sr.Status = StatusFailed
		res.Stats.Failed++
		dept.Failed++
		m.log.Warnf("failed to schedule %s for %s: %s", req.Label, sr.Code, sr.Name)
	}
	res.Stats.ByDepartment[sr.Department] = dept
	res.Outcomes = append(res.Outcomes, sr)

	m.publish(events.PlacementEvent{
		Department: sr.Department,
		Semester:   sr.Semester,
		Code:       sr.Code,
		Label:      sr.Label,
		Kind:       req.Kind,
		Placed:     out.Placed,
		Day:        out.Day,
		Slot:       out.Slot,
		Fallback:   out.Fallback,
	})
	m.append(ctx, res.RunID, sr)
	return out
}

// recordElective emits Not-Scheduled outcomes for the course's lecture and
// tutorial components without touching the scheduler.
func (m *Manager) recordElective(ctx context.Context, c model.Course, res *RunResult) {
	res.Stats.Electives++
	m.publish(events.ElectiveEvent{
		Department: c.Department,
		Semester:   c.Semester,
		Code:       c.Code,
	})
	for _, part := range []struct {
		count int
		label string
	}{
		{c.Lectures, "ELECTIVE LEC"},
		{c.Tutorials, "ELECTIVE TUT"},
	} {
		if part.count == 0 {
			continue
		}
		sr := SessionResult{
			Department: c.Department,
			Semester:   c.Semester,
			Code:       c.Code,
			Name:       c.Name,
			Label:      part.label,
			Faculty:    c.Faculty.Raw,
			Room:       c.Room.Raw,
			Status:     StatusNotScheduled,
			Day:        -1,
		}
		res.Outcomes = append(res.Outcomes, sr)
		m.append(ctx, res.RunID, sr)
	}
}

func (m *Manager) append(ctx context.Context, runID string, sr SessionResult) {
	if m.store == nil {
		return
	}
	rec := logging.OutcomeRecord{
		RunID:      runID,
		Timestamp:  time.Now(),
		Department: sr.Department,
		Semester:   sr.Semester,
		Code:       sr.Code,
		Name:       sr.Name,
		Label:      sr.Label,
		Faculty:    sr.Faculty,
		Room:       sr.Room,
		Status:     sr.Status.String(),
	}
	if sr.Status == StatusScheduled {
		rec.Day = timegrid.DayName(sr.Day)
		rec.StartTime = m.cal.StartLabel(sr.Slot)
	}
	if err := m.store.Append(ctx, rec); err != nil {
		m.log.Errorf("outcome store append: %v", err)
	}
}

func (m *Manager) publish(e eventbus.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// groupCourses batches courses by department+semester, preserving the order
// in which groups first appear in the input.
func groupCourses(courses []model.Course) []*group {
	var order []*group
	index := make(map[string]*group)
	for _, c := range courses {
		key := c.Department + "_" + c.Semester
		g, ok := index[key]
		if !ok {
			g = &group{department: c.Department, semester: c.Semester}
			index[key] = g
			order = append(order, g)
		}
		g.courses = append(g.courses, c)
	}
	return order
}

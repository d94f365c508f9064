package schedule

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campusplan/timegrid/core/events"
	"github.com/campusplan/timegrid/core/model"
	"github.com/campusplan/timegrid/core/schedule/logging"
	"github.com/campusplan/timegrid/core/timegrid"
	"github.com/campusplan/timegrid/infra/logger"
	"github.com/campusplan/timegrid/internal/eventbus"
)

func course(dept, sem, code string, l, t, p int, faculty, room string) model.Course {
	return model.Course{
		Department: dept,
		Semester:   sem,
		Code:       code,
		Name:       code + " name",
		Lectures:   l,
		Tutorials:  t,
		Practicals: p,
		Faculty:    model.ParseFaculty(faculty),
		Room:       model.ParseRoom(room),
	}
}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	cal, err := timegrid.NewCalendar(timegrid.CalendarConfig{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = 11
	}
	m, err := NewManager(cal, cfg, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestRunSchedulesAcrossDepartments(t *testing.T) {
	m := newTestManager(t, Config{})
	courses := []model.Course{
		course("DSAI", "3", "CS301", 3, 1, 2, "Dr. A", "C-201"),
		course("DSAI", "3", "CS302", 2, 0, 0, "Dr. B", "C-201"),
		course("ECE", "5", "EC501", 3, 0, 0, "Dr. A", "E-101"),
	}
	res, err := m.Run(context.Background(), courses)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Grids) != 2 {
		t.Fatalf("expected 2 grids, got %d", len(res.Grids))
	}
	if res.Stats.Failed != 0 {
		t.Fatalf("unexpected failures: %+v", res.Stats)
	}
	// CS301: LAB + 2 LEC + 1 TUT; CS302: 2 LEC; EC501: 2 LEC.
	if res.Stats.TotalSessions != 8 {
		t.Errorf("total sessions = %d, want 8", res.Stats.TotalSessions)
	}

	assertNoConflicts(t, m.cal, res.Grids)
	assertLunchSeeded(t, m.cal, res.Grids)
}

// assertNoConflicts checks the run-wide invariants: no tracked faculty or
// room is booked twice for the same (day, slot) across any grid, and no
// session covers a morning-break slot.
func assertNoConflicts(t *testing.T, cal *timegrid.Calendar, grids []*timegrid.Grid) {
	t.Helper()
	type key struct {
		name string
		day  int
		slot int
	}
	faculty := make(map[key]string)
	rooms := make(map[key]string)
	for _, g := range grids {
		for day := 0; day < timegrid.NumDays; day++ {
			for slot := 0; slot < g.NumSlots(); slot++ {
				c := g.Cell(day, slot)
				if c.State != timegrid.CellStart || c.Kind == model.KindLunch {
					continue
				}
				for i := 0; i < c.Span; i++ {
					if cal.IsMorningBreak(slot + i) {
						t.Errorf("%s %s covers morning break on %s", g.Key(), c.Code, timegrid.DayName(day))
					}
					if !strings.ContainsAny(c.Faculty, "/,") {
						k := key{c.Faculty, day, slot + i}
						if prev, clash := faculty[k]; clash {
							t.Errorf("faculty %s double-booked: %s and %s", c.Faculty, prev, c.Code)
						}
						faculty[k] = c.Code
					}
					if !strings.HasPrefix(c.Room, "TBD_") && !strings.Contains(c.Room, "Will be scheduled") {
						k := key{c.Room, day, slot + i}
						if prev, clash := rooms[k]; clash {
							t.Errorf("room %s double-booked: %s and %s", c.Room, prev, c.Code)
						}
						rooms[k] = c.Code
					}
				}
			}
		}
	}
}

func assertLunchSeeded(t *testing.T, cal *timegrid.Calendar, grids []*timegrid.Grid) {
	t.Helper()
	for _, g := range grids {
		for day := 0; day < timegrid.NumDays; day++ {
			blocks := 0
			for slot := 0; slot < g.NumSlots(); slot++ {
				c := g.Cell(day, slot)
				if c.State == timegrid.CellStart && c.Kind == model.KindLunch {
					blocks++
					if !cal.IsLunchWindow(slot) {
						t.Errorf("%s lunch on %s outside window (slot %d)", g.Key(), timegrid.DayName(day), slot)
					}
					if c.Span != 2 {
						t.Errorf("%s lunch span = %d", g.Key(), c.Span)
					}
				}
			}
			if blocks != 1 {
				t.Errorf("%s has %d lunch blocks on %s", g.Key(), blocks, timegrid.DayName(day))
			}
		}
	}
}

func TestRunThreeCreditCourseYieldsTwoLectures(t *testing.T) {
	m := newTestManager(t, Config{})
	res, err := m.Run(context.Background(), []model.Course{
		course("DSAI", "3", "MA201", 3, 0, 0, "Dr. M", "C-105"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lectures := 0
	for _, o := range res.Outcomes {
		if strings.HasPrefix(o.Label, "LEC") {
			lectures++
		}
	}
	if lectures != 2 {
		t.Fatalf("L=3 produced %d lecture outcomes, want 2", lectures)
	}
}

func TestRunRecordsElectives(t *testing.T) {
	m := newTestManager(t, Config{})
	elective := course("DSAI", "3", "HS3B1", 3, 1, 0, "Dr. E", "C-301")
	elective.Elective = true
	res, err := m.Run(context.Background(), []model.Course{elective})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Stats.Electives != 1 || res.Stats.TotalSessions != 0 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if len(res.Outcomes) != 2 {
		t.Fatalf("expected ELECTIVE LEC and ELECTIVE TUT rows, got %+v", res.Outcomes)
	}
	for _, o := range res.Outcomes {
		if o.Status != StatusNotScheduled {
			t.Errorf("elective outcome status = %v", o.Status)
		}
	}
	// The grid must stay untouched apart from lunch.
	for day := 0; day < timegrid.NumDays; day++ {
		for slot := 0; slot < res.Grids[0].NumSlots(); slot++ {
			c := res.Grids[0].Cell(day, slot)
			if c.State != timegrid.CellEmpty && c.Kind != model.KindLunch {
				t.Fatalf("elective reached the grid: %+v", c)
			}
		}
	}
}

func TestRunContinuesAfterLabFailure(t *testing.T) {
	// A lab span longer than the day is structurally infeasible; the course's
	// lectures must still be scheduled.
	m := newTestManager(t, Config{Spans: SpanConfig{Lab: 25}})
	res, err := m.Run(context.Background(), []model.Course{
		course("DSAI", "3", "CS310", 2, 0, 2, "Dr. A", "L-2"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var labFailed bool
	var lecturesScheduled int
	for _, o := range res.Outcomes {
		switch {
		case o.Label == "LAB" && o.Status == StatusFailed:
			labFailed = true
		case strings.HasPrefix(o.Label, "LEC") && o.Status == StatusScheduled:
			lecturesScheduled++
		}
	}
	if !labFailed {
		t.Fatal("lab should have failed")
	}
	if lecturesScheduled != 2 {
		t.Fatalf("lectures scheduled = %d, want 2", lecturesScheduled)
	}
	if res.Stats.Failed != 1 || res.Stats.Scheduled != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRunAppendsToOutcomeStore(t *testing.T) {
	store, err := logging.NewJSONLStore(filepath.Join(t.TempDir(), "outcomes.jsonl"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	m := newTestManager(t, Config{})
	m.SetOutcomeStore(store)
	res, err := m.Run(context.Background(), []model.Course{
		course("DSAI", "3", "CS301", 2, 0, 0, "Dr. A", "C-201"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	recs, err := store.Query(context.Background(), logging.Query{RunID: res.RunID})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != len(res.Outcomes) {
		t.Fatalf("store has %d records, run produced %d outcomes", len(recs), len(res.Outcomes))
	}
	if recs[0].Day == "" || recs[0].StartTime == "" {
		t.Errorf("scheduled record missing day/time: %+v", recs[0])
	}
}

func TestRunPublishesEvents(t *testing.T) {
	cal, err := timegrid.NewCalendar(timegrid.CalendarConfig{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	bus := eventbus.New()
	sub := bus.Subscribe()
	m, err := NewManager(cal, Config{Seed: 11}, logger.NopLogger{}, bus)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	elective := course("DSAI", "3", "CS505", 3, 0, 0, "Dr. B", "C-202")
	elective.Elective = true
	courses := []model.Course{
		course("DSAI", "3", "CS301", 3, 0, 0, "Dr. A", "C-201"),
		elective,
	}
	if _, err := m.Run(context.Background(), courses); err != nil {
		t.Fatalf("run: %v", err)
	}
	bus.Close()

	var grids, placements, electives int
	var started, finished bool
	for ev := range sub {
		switch e := ev.(type) {
		case events.GridEvent:
			grids++
		case events.PlacementEvent:
			placements++
		case events.ElectiveEvent:
			electives++
		case events.RunEvent:
			if e.Finished {
				finished = true
			} else {
				started = true
			}
		}
	}
	if grids != 1 {
		t.Errorf("grid events = %d, want 1", grids)
	}
	if placements != 2 { // L=3 expands to exactly two lectures
		t.Errorf("placement events = %d, want 2", placements)
	}
	if electives != 1 {
		t.Errorf("elective events = %d, want 1", electives)
	}
	if !started || !finished {
		t.Errorf("run events: started=%v finished=%v, want both", started, finished)
	}
}

func TestRunIsReproducible(t *testing.T) {
	courses := []model.Course{
		course("DSAI", "3", "CS301", 3, 1, 2, "Dr. A", "C-201"),
		course("ECE", "5", "EC501", 2, 1, 0, "Dr. B", "E-101"),
	}
	run := func() []SessionResult {
		m := newTestManager(t, Config{Seed: 77})
		res, err := m.Run(context.Background(), courses)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return res.Outcomes
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("outcome counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Day != b[i].Day || a[i].Slot != b[i].Slot || a[i].Status != b[i].Status {
			t.Fatalf("outcome %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

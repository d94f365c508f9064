package timegrid

import (
	"fmt"

	"github.com/campusplan/timegrid/core/model"
)

// CellState distinguishes the three cell variants of a timetable grid.
type CellState int

const (
	// CellEmpty marks a slot holding no session.
	CellEmpty CellState = iota
	// CellStart marks the first slot of a session; it carries the session
	// metadata and its full span.
	CellStart
	// CellContinuation marks a follow-on slot of a multi-slot session.
	CellContinuation
)

// Cell is one (day, slot) entry of a timetable grid. Metadata fields are set
// only on CellStart cells; Continuation cells carry the kind and their offset
// from the start of the session.
type Cell struct {
	State   CellState
	Kind    model.SessionKind
	Label   string // session tag with ordinal, e.g. "LEC 2"
	Code    string
	Name    string
	Faculty string
	Room    string
	Span    int // slot count of the session, nonzero only on the start cell
	Offset  int // position within the session, 0 on the start cell
}

// Session holds the metadata written into a grid when a placement commits.
type Session struct {
	Kind    model.SessionKind
	Label   string
	Code    string
	Name    string
	Faculty string
	Room    string
	Span    int
}

// Grid is the authoritative day x slot record of one department+semester
// timetable. It is created once, seeded with lunch blocks, then mutated only
// by successful placements.
type Grid struct {
	Department string
	Semester   string
	cells      [][]Cell
}

// NewGrid creates an empty grid sized by the calendar.
func NewGrid(department, semester string, cal *Calendar) *Grid {
	cells := make([][]Cell, NumDays)
	for d := range cells {
		cells[d] = make([]Cell, cal.NumSlots())
	}
	return &Grid{Department: department, Semester: semester, cells: cells}
}

// Key returns the department_semester identifier used for grouping and sheet
// titles.
func (g *Grid) Key() string { return g.Department + "_" + g.Semester }

// Cell returns the cell at (day, slot).
func (g *Grid) Cell(day, slot int) Cell { return g.cells[day][slot] }

// NumSlots returns the slot count per day.
func (g *Grid) NumSlots() int { return len(g.cells[0]) }

// Free reports whether all span cells starting at (day, start) hold no
// session. It returns false when the range runs past the day.
func (g *Grid) Free(day, start, span int) bool {
	if start < 0 || start+span > len(g.cells[day]) {
		return false
	}
	for i := 0; i < span; i++ {
		if g.cells[day][start+i].State != CellEmpty {
			return false
		}
	}
	return true
}

// DayLoad counts the occupied cells of a day, the measure used to bias the
// greedy pass toward lighter days.
func (g *Grid) DayLoad(day int) int {
	n := 0
	for _, c := range g.cells[day] {
		if c.State != CellEmpty {
			n++
		}
	}
	return n
}

// Place writes the session into the cells [start, start+span) of the day,
// following the start/continuation convention. It returns an error when any
// target cell is already occupied; the grid is not modified in that case.
func (g *Grid) Place(day, start int, s Session) error {
	if !g.Free(day, start, s.Span) {
		return fmt.Errorf("slots %d-%d on %s are not free", start, start+s.Span-1, DayName(day))
	}
	g.cells[day][start] = Cell{
		State:   CellStart,
		Kind:    s.Kind,
		Label:   s.Label,
		Code:    s.Code,
		Name:    s.Name,
		Faculty: s.Faculty,
		Room:    s.Room,
		Span:    s.Span,
	}
	for i := 1; i < s.Span; i++ {
		g.cells[day][start+i] = Cell{State: CellContinuation, Kind: s.Kind, Offset: i}
	}
	return nil
}

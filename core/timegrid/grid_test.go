package timegrid

import (
	"testing"

	"github.com/campusplan/timegrid/core/model"
)

func TestGridPlaceConvention(t *testing.T) {
	cal := defaultCalendar(t)
	g := NewGrid("DSAI", "3", cal)

	s := Session{Kind: model.KindLab, Label: "LAB", Code: "CS301", Name: "Networks Lab", Faculty: "Dr. A", Room: "L-1", Span: 4}
	if err := g.Place(1, 4, s); err != nil {
		t.Fatalf("place: %v", err)
	}

	first := g.Cell(1, 4)
	if first.State != CellStart || first.Span != 4 || first.Offset != 0 {
		t.Fatalf("start cell = %+v", first)
	}
	if first.Code != "CS301" || first.Faculty != "Dr. A" {
		t.Errorf("start cell metadata missing: %+v", first)
	}
	for i := 1; i < 4; i++ {
		c := g.Cell(1, 4+i)
		if c.State != CellContinuation || c.Offset != i || c.Kind != model.KindLab {
			t.Errorf("continuation %d = %+v", i, c)
		}
		if c.Span != 0 || c.Code != "" {
			t.Errorf("continuation %d carries start metadata: %+v", i, c)
		}
	}
}

func TestGridPlaceRejectsOverlap(t *testing.T) {
	cal := defaultCalendar(t)
	g := NewGrid("ECE", "5", cal)
	s := Session{Kind: model.KindLecture, Label: "LEC 1", Span: 3}
	if err := g.Place(0, 0, s); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := g.Place(0, 2, s); err == nil {
		t.Fatal("expected overlap rejection")
	}
	// The failed attempt must not have touched any cell.
	if g.Cell(0, 3).State != CellEmpty || g.Cell(0, 4).State != CellEmpty {
		t.Error("failed placement mutated the grid")
	}
}

func TestGridPlaceRejectsOverflow(t *testing.T) {
	cal := defaultCalendar(t)
	g := NewGrid("ECE", "5", cal)
	s := Session{Kind: model.KindLab, Label: "LAB", Span: 4}
	if err := g.Place(0, cal.NumSlots()-2, s); err == nil {
		t.Fatal("expected overflow rejection")
	}
}

func TestDayLoad(t *testing.T) {
	cal := defaultCalendar(t)
	g := NewGrid("DSAI", "3", cal)
	if g.DayLoad(2) != 0 {
		t.Fatal("fresh grid must have zero load")
	}
	if err := g.Place(2, 0, Session{Kind: model.KindTutorial, Label: "TUT 1", Span: 2}); err != nil {
		t.Fatalf("place: %v", err)
	}
	if got := g.DayLoad(2); got != 2 {
		t.Errorf("DayLoad = %d, want 2", got)
	}
	if g.DayLoad(3) != 0 {
		t.Error("other days must be unaffected")
	}
}

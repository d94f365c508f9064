package timegrid

import "testing"

func defaultCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := NewCalendar(CalendarConfig{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	return cal
}

func TestCalendarSlots(t *testing.T) {
	cal := defaultCalendar(t)
	if got := cal.NumSlots(); got != 19 {
		t.Fatalf("expected 19 slots, got %d", got)
	}
	if cal.Label(0) != "09:00-09:30" {
		t.Errorf("first slot label = %q", cal.Label(0))
	}
	if cal.Label(18) != "18:00-18:30" {
		t.Errorf("last slot label = %q", cal.Label(18))
	}
}

func TestMorningBreakWindow(t *testing.T) {
	cal := defaultCalendar(t)
	for i := 0; i < cal.NumSlots(); i++ {
		want := i == 3 // 10:30-11:00
		if cal.IsMorningBreak(i) != want {
			t.Errorf("slot %d (%s): IsMorningBreak = %v", i, cal.Label(i), !want)
		}
	}
}

func TestLunchWindow(t *testing.T) {
	cal := defaultCalendar(t)
	// 12:30 through 14:00 starts fall in the descriptive window.
	for i := 0; i < cal.NumSlots(); i++ {
		want := i >= 7 && i <= 10
		if cal.IsLunchWindow(i) != want {
			t.Errorf("slot %d (%s): IsLunchWindow = %v", i, cal.Label(i), !want)
		}
	}
}

func TestLunchStartCandidates(t *testing.T) {
	cal := defaultCalendar(t)
	got := cal.LunchStartCandidates()
	want := []int{7, 8, 9} // starts 12:30, 13:00, 13:30
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}
}

func TestCalendarValidation(t *testing.T) {
	if _, err := NewCalendar(CalendarConfig{DayStart: "18:00", DayEnd: "09:00"}); err == nil {
		t.Error("expected error for inverted day bounds")
	}
	if _, err := NewCalendar(CalendarConfig{DayStart: "bogus"}); err == nil {
		t.Error("expected error for unparsable time")
	}
}

func TestDayNames(t *testing.T) {
	if DayName(0) != "Monday" || DayName(4) != "Friday" {
		t.Error("unexpected day names")
	}
	if DayIndex("wednesday") != 2 {
		t.Errorf("DayIndex(wednesday) = %d", DayIndex("wednesday"))
	}
	if DayIndex("Sunday") != -1 {
		t.Error("unknown day should map to -1")
	}
}

package timegrid

import "sort"

type slotSet map[int]struct{}

// occupancy tracks the committed slots of one resource across the week.
type occupancy struct {
	days []slotSet
}

func newOccupancy() *occupancy {
	o := &occupancy{days: make([]slotSet, NumDays)}
	for d := range o.days {
		o.days[d] = make(slotSet)
	}
	return o
}

// AvailabilityIndex records which (day, slot) pairs are committed per faculty
// name and per classroom. One instance is shared across every grid of a
// scheduling run: a faculty member teaching in two departments is tracked
// against the same record.
type AvailabilityIndex struct {
	faculty map[string]*occupancy
	rooms   map[string]*occupancy
}

// NewAvailabilityIndex creates an empty index. It must be constructed once
// per run and never reset between departments.
func NewAvailabilityIndex() *AvailabilityIndex {
	return &AvailabilityIndex{
		faculty: make(map[string]*occupancy),
		rooms:   make(map[string]*occupancy),
	}
}

// FacultyFree reports whether the named faculty member has no commitment on
// any of the span slots starting at (day, start).
func (a *AvailabilityIndex) FacultyFree(name string, day, start, span int) bool {
	return free(a.faculty[name], day, start, span)
}

// RoomFree reports whether the named room has no commitment on any of the
// span slots starting at (day, start).
func (a *AvailabilityIndex) RoomFree(name string, day, start, span int) bool {
	return free(a.rooms[name], day, start, span)
}

func free(o *occupancy, day, start, span int) bool {
	if o == nil {
		return true
	}
	for i := 0; i < span; i++ {
		if _, busy := o.days[day][start+i]; busy {
			return false
		}
	}
	return true
}

// ReserveFaculty marks the span slots occupied for every listed name. It is
// called on commit even for flexible assignments: tracking is recorded for
// bookkeeping although conflict checks skip flexible designators.
func (a *AvailabilityIndex) ReserveFaculty(names []string, day, start, span int) {
	for _, n := range names {
		reserve(a.faculty, n, day, start, span)
	}
}

// ReserveRoom marks the span slots occupied for the room, placeholders
// included, so later reporting can inspect classroom usage.
func (a *AvailabilityIndex) ReserveRoom(name string, day, start, span int) {
	reserve(a.rooms, name, day, start, span)
}

func reserve(m map[string]*occupancy, name string, day, start, span int) {
	if name == "" {
		return
	}
	o, ok := m[name]
	if !ok {
		o = newOccupancy()
		m[name] = o
	}
	for i := 0; i < span; i++ {
		o.days[day][start+i] = struct{}{}
	}
}

// RoomSlots returns the sorted committed slots of a room on the given day.
func (a *AvailabilityIndex) RoomSlots(name string, day int) []int {
	o := a.rooms[name]
	if o == nil {
		return nil
	}
	out := make([]int, 0, len(o.days[day]))
	for s := range o.days[day] {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Rooms returns the sorted names of every room the index has seen.
func (a *AvailabilityIndex) Rooms() []string {
	out := make([]string, 0, len(a.rooms))
	for n := range a.rooms {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

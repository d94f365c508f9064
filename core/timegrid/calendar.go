package timegrid

import (
	"fmt"
	"strings"
)

// dayNames lists the teaching days of the week, in order.
var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// NumDays is the number of teaching days in a week.
const NumDays = 5

// DayName returns the name of day index d.
func DayName(d int) string {
	if d < 0 || d >= len(dayNames) {
		return fmt.Sprintf("DAY(%d)", d)
	}
	return dayNames[d]
}

// DayIndex returns the index of the named day, or -1 when unknown.
func DayIndex(name string) int {
	for i, n := range dayNames {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Slot is one fixed-width interval of the working day. Start and End are
// minutes since midnight.
type Slot struct {
	Start int
	End   int
}

// CalendarConfig defines the working day and its fixed windows. Times are
// "HH:MM" strings as they appear in configuration files.
type CalendarConfig struct {
	DayStart          string `json:"day_start"`
	DayEnd            string `json:"day_end"`
	SlotMinutes       int    `json:"slot_minutes"`
	MorningBreakStart string `json:"morning_break_start"`
	MorningBreakEnd   string `json:"morning_break_end"`
	LunchWindowStart  string `json:"lunch_window_start"`
	LunchWindowEnd    string `json:"lunch_window_end"`
	// LunchSearchEnd bounds the start times considered when seeding lunch
	// blocks. It is narrower than LunchWindowEnd so a block never spills past
	// the window.
	LunchSearchEnd string `json:"lunch_search_end"`
}

// SetDefaults applies the standard academic working day.
func (c *CalendarConfig) SetDefaults() {
	if c.DayStart == "" {
		c.DayStart = "09:00"
	}
	if c.DayEnd == "" {
		c.DayEnd = "18:30"
	}
	if c.SlotMinutes == 0 {
		c.SlotMinutes = 30
	}
	if c.MorningBreakStart == "" {
		c.MorningBreakStart = "10:30"
	}
	if c.MorningBreakEnd == "" {
		c.MorningBreakEnd = "11:00"
	}
	if c.LunchWindowStart == "" {
		c.LunchWindowStart = "12:30"
	}
	if c.LunchWindowEnd == "" {
		c.LunchWindowEnd = "14:30"
	}
	if c.LunchSearchEnd == "" {
		c.LunchSearchEnd = "14:00"
	}
}

// Calendar produces the ordered half-hour slots spanning the working day and
// the predicates for the fixed break windows. It is built once per run and
// never mutated.
type Calendar struct {
	slots []Slot

	breakStart, breakEnd int
	lunchStart, lunchEnd int
	lunchSearchEnd       int
}

// NewCalendar builds a Calendar from cfg. Defaults are applied to empty
// fields before validation.
func NewCalendar(cfg CalendarConfig) (*Calendar, error) {
	cfg.SetDefaults()
	if cfg.SlotMinutes <= 0 {
		return nil, fmt.Errorf("slot_minutes must be positive")
	}
	parse := func(field, v string) (int, error) {
		m, err := parseClock(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", field, err)
		}
		return m, nil
	}
	start, err := parse("day_start", cfg.DayStart)
	if err != nil {
		return nil, err
	}
	end, err := parse("day_end", cfg.DayEnd)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, fmt.Errorf("day_end must be after day_start")
	}
	cal := &Calendar{}
	if cal.breakStart, err = parse("morning_break_start", cfg.MorningBreakStart); err != nil {
		return nil, err
	}
	if cal.breakEnd, err = parse("morning_break_end", cfg.MorningBreakEnd); err != nil {
		return nil, err
	}
	if cal.lunchStart, err = parse("lunch_window_start", cfg.LunchWindowStart); err != nil {
		return nil, err
	}
	if cal.lunchEnd, err = parse("lunch_window_end", cfg.LunchWindowEnd); err != nil {
		return nil, err
	}
	if cal.lunchSearchEnd, err = parse("lunch_search_end", cfg.LunchSearchEnd); err != nil {
		return nil, err
	}
	for t := start; t < end; t += cfg.SlotMinutes {
		cal.slots = append(cal.slots, Slot{Start: t, End: t + cfg.SlotMinutes})
	}
	return cal, nil
}

// Slots returns the ordered slot sequence. The returned slice must be treated
// as read-only.
func (c *Calendar) Slots() []Slot { return c.slots }

// NumSlots returns the number of slots in the working day.
func (c *Calendar) NumSlots() int { return len(c.slots) }

// IsMorningBreak reports whether the slot starts inside the morning break
// window.
func (c *Calendar) IsMorningBreak(slot int) bool {
	if slot < 0 || slot >= len(c.slots) {
		return false
	}
	s := c.slots[slot].Start
	return s >= c.breakStart && s < c.breakEnd
}

// IsLunchWindow reports whether the slot starts inside the lunch window. The
// predicate is descriptive; lunch seeding uses LunchStartCandidates.
func (c *Calendar) IsLunchWindow(slot int) bool {
	if slot < 0 || slot >= len(c.slots) {
		return false
	}
	s := c.slots[slot].Start
	return s >= c.lunchStart && s < c.lunchEnd
}

// LunchStartCandidates returns the slot indices whose start time falls inside
// the lunch search range.
func (c *Calendar) LunchStartCandidates() []int {
	var idx []int
	for i, s := range c.slots {
		if s.Start >= c.lunchStart && s.Start < c.lunchSearchEnd {
			idx = append(idx, i)
		}
	}
	return idx
}

// StartLabel renders the slot's start time as "HH:MM".
func (c *Calendar) StartLabel(slot int) string {
	return clockLabel(c.slots[slot].Start)
}

// Label renders the slot as "HH:MM-HH:MM".
func (c *Calendar) Label(slot int) string {
	s := c.slots[slot]
	return clockLabel(s.Start) + "-" + clockLabel(s.End)
}

func parseClock(v string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q", v)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", v)
	}
	return h*60 + m, nil
}

func clockLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

package model

import (
	"fmt"
	"strings"
)

// SessionKind identifies the type of a teaching session.
type SessionKind int

const (
	KindLecture SessionKind = iota
	KindLab
	KindTutorial
	KindLunch
)

// String returns the short tag used in timetables and reports.
func (k SessionKind) String() string {
	switch k {
	case KindLecture:
		return "LEC"
	case KindLab:
		return "LAB"
	case KindTutorial:
		return "TUT"
	case KindLunch:
		return "LUNCH"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

// Course is one cleaned offering row handed to the scheduler. Numeric fields
// are non-negative and designators are resolved before a Course is built.
type Course struct {
	Department string
	Semester   string
	Code       string
	Name       string
	Lectures   int // L credit count
	Tutorials  int // T credit count
	Practicals int // P credit count; >0 means the course carries a lab
	Faculty    FacultyAssignment
	Room       RoomAssignment
	Elective   bool
}

// HasLab reports whether a lab session must be placed for the course.
func (c Course) HasLab() bool { return c.Practicals > 0 }

// HasTaught reports whether the course has lecture or tutorial components.
func (c Course) HasTaught() bool { return c.Lectures > 0 || c.Tutorials > 0 }

// FacultyAssignment is a faculty designator resolved at ingestion. Names holds
// the individual resource names; more than one name means the field listed
// alternatives joined by "/" or "," and the assignment is flexible.
type FacultyAssignment struct {
	Raw   string
	Names []string
}

// ParseFaculty splits a raw faculty field into its individual names.
func ParseFaculty(raw string) FacultyAssignment {
	raw = strings.TrimSpace(raw)
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == ',' })
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 && raw != "" {
		names = []string{raw}
	}
	return FacultyAssignment{Raw: raw, Names: names}
}

// Flexible reports whether the assignment lists alternatives. Flexible
// assignments bypass conflict checking entirely.
func (f FacultyAssignment) Flexible() bool { return len(f.Names) > 1 }

// RoomAssignment is a classroom designator resolved at ingestion.
type RoomAssignment struct {
	Raw         string
	Placeholder bool
}

// ParseRoom classifies a raw classroom field. Auto-generated "TBD_" codes and
// "Will be scheduled" markers are placeholders exempt from conflict checking.
func ParseRoom(raw string) RoomAssignment {
	raw = strings.TrimSpace(raw)
	ph := strings.HasPrefix(raw, "TBD_") || strings.Contains(raw, "Will be scheduled")
	return RoomAssignment{Raw: raw, Placeholder: ph}
}

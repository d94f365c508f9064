package schedule

import (
	"fmt"

	"github.com/campusplan/timegrid/core/model"
)

// Request asks for one session of a course to be placed on the grid.
type Request struct {
	Course model.Course
	Kind   model.SessionKind
	// Label is the session tag with its ordinal, e.g. "LEC 2" or "TUT 1".
	Label string
	// Span is the session length in slots, derived from the kind.
	Span int
}

// ExpandCourse turns a course's credit counts into the ordered sequence of
// placement requests. A lab, when present, always comes first. A lecture
// count of exactly 3 is split into two sessions, not three; any other count
// yields one request per lecture. Tutorials follow, one request each.
func ExpandCourse(c model.Course, spans SpanConfig) []Request {
	var reqs []Request
	if c.Practicals > 0 {
		reqs = append(reqs, Request{Course: c, Kind: model.KindLab, Label: "LAB", Span: spans.Lab})
	}
	lectures := c.Lectures
	if lectures == 3 {
		lectures = 2
	}
	for i := 0; i < lectures; i++ {
		reqs = append(reqs, Request{
			Course: c,
			Kind:   model.KindLecture,
			Label:  fmt.Sprintf("LEC %d", i+1),
			Span:   spans.Lecture,
		})
	}
	for i := 0; i < c.Tutorials; i++ {
		reqs = append(reqs, Request{
			Course: c,
			Kind:   model.KindTutorial,
			Label:  fmt.Sprintf("TUT %d", i+1),
			Span:   spans.Tutorial,
		})
	}
	return reqs
}

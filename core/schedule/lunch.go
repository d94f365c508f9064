package schedule

import (
	"math/rand"

	"github.com/campusplan/timegrid/core/logger"
	"github.com/campusplan/timegrid/core/model"
	"github.com/campusplan/timegrid/core/timegrid"
)

// SeedLunch pre-populates every day of the grid with one lunch block before
// any course is placed, so lunch can never be displaced by a session. The
// start slot is drawn uniformly from the calendar's lunch candidates. Days
// without a candidate are skipped with a warning; the seeded slots are
// returned per day, -1 for skipped days.
func SeedLunch(grid *timegrid.Grid, cal *timegrid.Calendar, span int, rng *rand.Rand, log logger.Logger) []int {
	starts := make([]int, timegrid.NumDays)
	candidates := cal.LunchStartCandidates()
	for day := 0; day < timegrid.NumDays; day++ {
		starts[day] = -1
		if len(candidates) == 0 {
			log.Warnf("no lunch slot available on %s for %s", timegrid.DayName(day), grid.Key())
			continue
		}
		start := candidates[rng.Intn(len(candidates))]
		err := grid.Place(day, start, timegrid.Session{
			Kind:  model.KindLunch,
			Label: "LUNCH",
			Code:  "LUNCH",
			Name:  "LUNCH BREAK",
			Span:  span,
		})
		if err != nil {
			log.Warnf("lunch seed on %s failed: %v", timegrid.DayName(day), err)
			continue
		}
		starts[day] = start
		log.Debugf("lunch on %s at %s for %s", timegrid.DayName(day), cal.StartLabel(start), grid.Key())
	}
	return starts
}

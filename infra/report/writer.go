package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/campusplan/timegrid/core/logger"
	"github.com/campusplan/timegrid/core/model"
	"github.com/campusplan/timegrid/core/schedule"
	"github.com/campusplan/timegrid/core/timegrid"
)

// Writer renders a scheduling run into an xlsx workbook: a summary sheet, one
// timetable sheet per department/semester grid, a classroom usage sheet and a
// statistics sheet.
type Writer struct {
	cal *timegrid.Calendar
	log logger.Logger
}

// NewWriter creates a Writer for the given calendar.
func NewWriter(cal *timegrid.Calendar, log logger.Logger) *Writer {
	return &Writer{cal: cal, log: log}
}

// Save builds the workbook for result and writes it to path.
func (w *Writer) Save(result *schedule.RunResult, path string) error {
	f, err := w.Build(result)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	w.log.Infof("wrote timetable workbook %s", path)
	return nil
}

// Build renders result into a new workbook. The caller owns the returned
// file.
func (w *Writer) Build(result *schedule.RunResult) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	build := func() error {
		if err := w.writeSummary(f, st, result); err != nil {
			return err
		}
		for _, g := range result.Grids {
			if err := w.writeGrid(f, st, g); err != nil {
				return err
			}
		}
		if err := w.writeClassroomUsage(f, st, result); err != nil {
			return err
		}
		if err := w.writeStatistics(f, st, result); err != nil {
			return err
		}
		return f.DeleteSheet("Sheet1")
	}
	if err := build(); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

type styles struct {
	header   int
	lecture  int
	lab      int
	tutorial int
	lunch    int
	brk      int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	fill := func(color string, bold bool) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: bold, Size: 10},
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{
				Horizontal: "center", Vertical: "center", WrapText: true,
			},
			Border: []excelize.Border{
				{Type: "left", Color: "999999", Style: 1},
				{Type: "right", Color: "999999", Style: 1},
				{Type: "top", Color: "999999", Style: 1},
				{Type: "bottom", Color: "999999", Style: 1},
			},
		})
		return id
	}
	st.header = fill("#4472C4", true)
	st.lecture = fill("#D9E1F2", false)
	st.lab = fill("#C6E0B4", false)
	st.tutorial = fill("#FFE699", false)
	st.lunch = fill("#F4B084", false)
	st.brk = fill("#D9D9D9", false)
	return st, err
}

func (w *Writer) kindStyle(st styles, kind model.SessionKind) int {
	switch kind {
	case model.KindLab:
		return st.lab
	case model.KindTutorial:
		return st.tutorial
	case model.KindLunch:
		return st.lunch
	default:
		return st.lecture
	}
}

var summaryColumns = []string{
	"Department", "Semester", "Course Code", "Course Name", "Session",
	"Faculty", "Classroom", "Status", "Scheduled Time",
}

func (w *Writer) writeSummary(f *excelize.File, st styles, result *schedule.RunResult) error {
	const sheet = "Scheduling_Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, toAny(summaryColumns)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(summaryColumns), st.header); err != nil {
		return err
	}
	for i, out := range result.Outcomes {
		when := ""
		if out.Status == schedule.StatusScheduled {
			when = fmt.Sprintf("%s %s", timegrid.DayName(out.Day), w.cal.StartLabel(out.Slot))
		}
		row := []any{
			out.Department, out.Semester, out.Code, out.Name, out.Label,
			out.Faculty, out.Room, out.Status.String(), when,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return setWidths(f, sheet, []float64{12, 10, 14, 32, 10, 24, 16, 14, 18})
}

// writeGrid renders one department/semester timetable: days as rows, slots as
// columns, sessions merged across their span.
func (w *Writer) writeGrid(f *excelize.File, st styles, g *timegrid.Grid) error {
	sheet := sheetTitle(g.Key())
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", "Day"); err != nil {
		return err
	}
	for s := 0; s < w.cal.NumSlots(); s++ {
		cell, err := excelize.CoordinatesToCellName(s+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, w.cal.Label(s)); err != nil {
			return err
		}
	}
	if err := styleRow(f, sheet, 1, w.cal.NumSlots()+1, st.header); err != nil {
		return err
	}
	for d := 0; d < timegrid.NumDays; d++ {
		row := d + 2
		dayCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, dayCell, timegrid.DayName(d)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, dayCell, dayCell, st.header); err != nil {
			return err
		}
		for s := 0; s < w.cal.NumSlots(); s++ {
			if err := w.writeGridCell(f, st, sheet, g, d, s, row); err != nil {
				return err
			}
		}
		if err := f.SetRowHeight(sheet, row, 52); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(w.cal.NumSlots() + 1)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 11); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", lastCol, 14)
}

func (w *Writer) writeGridCell(f *excelize.File, st styles, sheet string, g *timegrid.Grid, d, s, row int) error {
	cell, err := excelize.CoordinatesToCellName(s+2, row)
	if err != nil {
		return err
	}
	c := g.Cell(d, s)
	switch c.State {
	case timegrid.CellEmpty:
		if w.cal.IsMorningBreak(s) {
			if err := f.SetCellValue(sheet, cell, "BREAK"); err != nil {
				return err
			}
			return f.SetCellStyle(sheet, cell, cell, st.brk)
		}
		return nil
	case timegrid.CellContinuation:
		// Covered by the merge set from the start cell.
		return nil
	}
	text := "LUNCH"
	if c.Kind != model.KindLunch {
		text = fmt.Sprintf("%s %s\n%s\n%s", c.Code, c.Label, c.Faculty, c.Room)
	}
	if err := f.SetCellValue(sheet, cell, text); err != nil {
		return err
	}
	endCell, err := excelize.CoordinatesToCellName(s+1+c.Span, row)
	if err != nil {
		return err
	}
	if c.Span > 1 {
		if err := f.MergeCell(sheet, cell, endCell); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, cell, endCell, w.kindStyle(st, c.Kind))
}

var usageColumns = []string{
	"Classroom", "Day", "Time", "Course Code", "Course Name",
	"Department", "Semester", "Faculty",
}

func (w *Writer) writeClassroomUsage(f *excelize.File, st styles, result *schedule.RunResult) error {
	const sheet = "Classroom_Usage"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, toAny(usageColumns)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(usageColumns), st.header); err != nil {
		return err
	}
	var scheduled []schedule.SessionResult
	for _, out := range result.Outcomes {
		if out.Status == schedule.StatusScheduled {
			scheduled = append(scheduled, out)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		a, b := scheduled[i], scheduled[j]
		if a.Room != b.Room {
			return a.Room < b.Room
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Slot < b.Slot
	})
	for i, out := range scheduled {
		row := []any{
			out.Room, timegrid.DayName(out.Day), w.cal.StartLabel(out.Slot),
			out.Code, out.Name, out.Department, out.Semester, out.Faculty,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return setWidths(f, sheet, []float64{16, 12, 10, 14, 32, 12, 10, 24})
}

func (w *Writer) writeStatistics(f *excelize.File, st styles, result *schedule.RunResult) error {
	const sheet = "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	stats := result.Stats
	rows := [][]any{
		{"Metric", "Value"},
		{"Run ID", result.RunID},
		{"Total sessions", stats.TotalSessions},
		{"Scheduled", stats.Scheduled},
		{"Failed", stats.Failed},
		{"Electives skipped", stats.Electives},
		{"Success rate (%)", fmt.Sprintf("%.1f", stats.SuccessRate())},
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	if err := styleRow(f, sheet, 1, 2, st.header); err != nil {
		return err
	}
	deptRow := len(rows) + 2
	if err := writeRow(f, sheet, deptRow, []any{"Department", "Scheduled", "Failed"}); err != nil {
		return err
	}
	if err := styleRow(f, sheet, deptRow, 3, st.header); err != nil {
		return err
	}
	depts := make([]string, 0, len(stats.ByDepartment))
	for d := range stats.ByDepartment {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	for i, d := range depts {
		ds := stats.ByDepartment[d]
		if err := writeRow(f, sheet, deptRow+1+i, []any{d, ds.Scheduled, ds.Failed}); err != nil {
			return err
		}
	}
	return setWidths(f, sheet, []float64{22, 14, 14})
}

// sheetTitle fits a grid key into the 31-character sheet name limit.
func sheetTitle(key string) string {
	if len(key) > 31 {
		return key[:31]
	}
	return key
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

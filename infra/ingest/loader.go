package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/campusplan/timegrid/core/logger"
	"github.com/campusplan/timegrid/core/model"
)

// requiredColumns must all be present in the input header.
var requiredColumns = []string{
	"Department", "Semester", "Course Code", "Course Name",
	"L", "T", "P", "Faculty", "Classroom",
}

// Loader reads course offerings from a spreadsheet or delimited text file and
// cleans them into model.Course records: numeric credit fields become
// non-negative ints, missing course codes and classrooms are generated, and
// electives are flagged.
type Loader struct {
	// Sheet is the worksheet read from xlsx files. Defaults to "Sheet1".
	Sheet string
	log   logger.Logger
}

// New creates a Loader.
func New(log logger.Logger) *Loader {
	return &Loader{Sheet: "Sheet1", log: log}
}

// Load reads the file at path. The format is chosen by extension: .xlsx via
// excelize, .csv comma-separated, anything else tab-separated.
func (l *Loader) Load(path string) ([]model.Course, error) {
	rows, err := l.readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: %s holds no rows", path)
	}
	head, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}
	var courses []model.Course
	for _, row := range rows[1:] {
		c, ok := l.buildCourse(head, row)
		if !ok {
			continue
		}
		courses = append(courses, c)
	}
	l.log.Infof("loaded %d courses from %s", len(courses), path)
	return courses, nil
}

func (l *Loader) readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.readWorkbook(path)
	case ".csv":
		return readDelimited(path, ',')
	default:
		return readDelimited(path, '\t')
	}
}

func (l *Loader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	sheet := l.Sheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = list[0]
		l.log.Warnf("sheet %q not found, reading %q", l.Sheet, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readDelimited(path string, sep rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("required column %q not found", col)
		}
	}
	return idx, nil
}

// buildCourse cleans one data row. Rows without a department or semester are
// dropped.
func (l *Loader) buildCourse(head map[string]int, row []string) (model.Course, bool) {
	field := func(name string) string {
		i, ok := head[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	dept := field("Department")
	sem := field("Semester")
	if dept == "" || sem == "" {
		return model.Course{}, false
	}
	name := field("Course Name")
	code := field("Course Code")
	if code == "" || code == "-" {
		code = generateCode(dept, sem, name)
	}
	room := field("Classroom")
	if room == "" || strings.Contains(room, "Will be scheduled") {
		room = fmt.Sprintf("TBD_%s_%s", dept, sem)
	}
	c := model.Course{
		Department: dept,
		Semester:   sem,
		Code:       code,
		Name:       name,
		Lectures:   creditCount(field("L")),
		Tutorials:  creditCount(field("T")),
		Practicals: creditCount(field("P")),
		Faculty:    model.ParseFaculty(field("Faculty")),
		Room:       model.ParseRoom(room),
		Elective:   isElective(code, name),
	}
	return c, true
}

// generateCode derives a course code from the department, semester and the
// initials of the course name, e.g. "Computer Networks" in DSAI/3 -> DS3CN.
func generateCode(dept, sem, name string) string {
	var initials strings.Builder
	taken := 0
	for _, word := range strings.Fields(name) {
		initials.WriteRune([]rune(word)[0])
		taken++
		if taken == 3 {
			break
		}
	}
	prefix := dept
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return strings.ToUpper(prefix + sem + initials.String())
}

// creditCount parses a credit field; blanks, garbage and negatives become 0.
func creditCount(v string) int {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}

// isElective applies the code/name heuristics: B1/B2 basket markers in the
// code or "elective" anywhere in the name.
func isElective(code, name string) bool {
	if strings.Contains(code, "B1") || strings.Contains(code, "B2") {
		return true
	}
	return strings.Contains(strings.ToLower(name), "elective")
}

// Package timegrid holds the shared scheduling state: the slot calendar of
// the working day, the per-department timetable grids and the run-wide
// faculty/room availability index.
package timegrid

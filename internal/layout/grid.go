// Package layout places timetable classes on an hour-by-day grid and lays
// out the month and two-week event calendars.
package layout

import (
	"fmt"
	"sort"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

// Window is the visible part of the week: which days and which hours
type Window struct {
	ShowWeekends bool
	StartHour    int
	EndHour      int
}

// NewWindow validates 0 <= start <= end <= 23
func NewWindow(showWeekends bool, startHour, endHour int) (Window, error) {
	if startHour < 0 || endHour > 23 || startHour > endHour {
		return Window{}, &models.ValidationError{
			Field:   "hours",
			Message: fmt.Sprintf("hour range %d-%d must satisfy 0 <= start <= end <= 23", startHour, endHour),
		}
	}
	return Window{ShowWeekends: showWeekends, StartHour: startHour, EndHour: endHour}, nil
}

// DefaultWindow is weekdays from 8 AM to 8 PM
func DefaultWindow() Window {
	return Window{StartHour: 8, EndHour: 20}
}

// Hours returns every hour row from start to end inclusive
func (w Window) Hours() []int {
	hours := make([]int, 0, w.EndHour-w.StartHour+1)
	for h := w.StartHour; h <= w.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Days returns the visible day columns
func (w Window) Days() []string {
	return parser.WeekDays(w.ShowWeekends)
}

// RangePreset is one of the offered hour windows
type RangePreset struct {
	Label string
	Start int
	End   int
}

var RangePresets = []RangePreset{
	{Label: "8 AM - 8 PM", Start: 8, End: 20},
	{Label: "7 AM - 10 PM", Start: 7, End: 22},
	{Label: "9 AM - 5 PM", Start: 9, End: 17},
}

// Block is a class positioned inside an hour cell. Offset and Height are in
// hours: Offset is how far into the row the class starts.
type Block struct {
	Class  models.ClassSession
	Start  float64
	End    float64
	Offset float64
	Height float64
}

// Cell holds the classes starting in one hour of one day, in input order
type Cell struct {
	Day    string
	Blocks []Block
}

// Row is one hour of the grid
type Row struct {
	Hour  int
	Label string
	Cells []Cell
}

// Grid is the horizontal timetable view
type Grid struct {
	Window Window
	Days   []string
	Rows   []Row
}

// Blocks counts placed classes
func (g Grid) Blocks() int {
	n := 0
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			n += len(cell.Blocks)
		}
	}
	return n
}

// Horizontal lays classes out by day column and start hour. A class sits
// in the single row containing its start time; one that ends at or before
// its start gets a one hour block. Classes on hidden days or starting
// outside the window are left out.
func Horizontal(classes []models.ClassSession, w Window) Grid {
	days := w.Days()
	grid := Grid{Window: w, Days: days}

	for _, hour := range w.Hours() {
		row := Row{Hour: hour, Label: fmt.Sprintf("%d:00", hour), Cells: make([]Cell, len(days))}
		for i, day := range days {
			row.Cells[i].Day = day
		}
		grid.Rows = append(grid.Rows, row)
	}

	col := make(map[string]int, len(days))
	for i, day := range days {
		col[day] = i
	}

	for _, cls := range classes {
		c, ok := col[parser.NormalizeDayName(cls.Day)]
		if !ok {
			continue
		}
		start := parser.ParseClockTime(cls.TimeStart)
		end := parser.ParseClockTime(cls.TimeEnd)

		hour := int(start)
		if hour < w.StartHour || hour > w.EndHour {
			continue
		}

		height := end - start
		if end <= start {
			height = 1
		}

		cell := &grid.Rows[hour-w.StartHour].Cells[c]
		cell.Blocks = append(cell.Blocks, Block{
			Class:  cls,
			Start:  start,
			End:    end,
			Offset: start - float64(hour),
			Height: height,
		})
	}

	return grid
}

// DayGroup is one day of the vertical list view
type DayGroup struct {
	Day     string
	Classes []models.ClassSession
}

// Vertical groups classes by visible day, earliest first. Days without
// classes are omitted; equal start times keep input order.
func Vertical(classes []models.ClassSession, w Window) []DayGroup {
	byDay := make(map[string][]models.ClassSession)
	for _, cls := range classes {
		day := parser.NormalizeDayName(cls.Day)
		byDay[day] = append(byDay[day], cls)
	}

	var groups []DayGroup
	for _, day := range w.Days() {
		list := byDay[day]
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool {
			return parser.ParseClockTime(list[i].TimeStart) < parser.ParseClockTime(list[j].TimeStart)
		})
		groups = append(groups, DayGroup{Day: day, Classes: list})
	}
	return groups
}

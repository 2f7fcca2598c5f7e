package layout

import (
	"fmt"
	"testing"
	"time"

	"github.com/balkashynov/jess/internal/models"
)

func class(code, day, start, end string) models.ClassSession {
	return models.ClassSession{ID: code, CourseCode: code, Day: day, TimeStart: start, TimeEnd: end}
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		start, end int
		wantErr    bool
		rows       int
	}{
		{8, 20, false, 13},
		{9, 17, false, 9},
		{0, 23, false, 24},
		{12, 12, false, 1},
		{-1, 10, true, 0},
		{10, 24, true, 0},
		{18, 9, true, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d", tt.start, tt.end), func(t *testing.T) {
			w, err := NewWindow(false, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tt.wantErr && len(w.Hours()) != tt.rows {
				t.Errorf("rows = %d, want %d", len(w.Hours()), tt.rows)
			}
		})
	}

	if got := len(Window{ShowWeekends: true}.Days()); got != 7 {
		t.Errorf("weekend days = %d", got)
	}
}

func TestHorizontalPlacement(t *testing.T) {
	w, _ := NewWindow(false, 8, 20)
	classes := []models.ClassSession{
		class("CS101", "Monday", "09:30", "11:00"),
		class("MA201", "Monday", "09:45", "10:15"),
		class("PH100", "Tuesday", "09:00", "09:00"),
		class("EN300", "Wednesday", "07:00", "08:00"),
		class("AR110", "Saturday", "10:00", "12:00"),
		class("BI200", "Thursday", "20:30", "21:30"),
	}
	grid := Horizontal(classes, w)

	if len(grid.Rows) != 13 || len(grid.Days) != 5 {
		t.Fatalf("grid shape %dx%d", len(grid.Rows), len(grid.Days))
	}
	if grid.Blocks() != 4 {
		t.Errorf("placed %d classes, want 4", grid.Blocks())
	}

	nine := grid.Rows[1]
	if nine.Hour != 9 || nine.Label != "9:00" {
		t.Fatalf("row 1 = %d %q", nine.Hour, nine.Label)
	}

	monday := nine.Cells[0]
	if len(monday.Blocks) != 2 || monday.Blocks[0].Class.CourseCode != "CS101" || monday.Blocks[1].Class.CourseCode != "MA201" {
		t.Fatalf("monday 9:00 = %+v", monday.Blocks)
	}
	if b := monday.Blocks[0]; b.Offset != 0.5 || b.Height != 1.5 {
		t.Errorf("CS101 offset/height = %v/%v", b.Offset, b.Height)
	}

	tuesday := nine.Cells[1].Blocks
	if len(tuesday) != 1 || tuesday[0].Height != 1 || tuesday[0].Offset != 0 {
		t.Errorf("zero-length class must clamp to height 1: %+v", tuesday)
	}

	last := grid.Rows[len(grid.Rows)-1]
	if last.Hour != 20 || len(last.Cells[3].Blocks) != 1 {
		t.Errorf("20:30 class not in last row: %+v", last)
	}

	// every class lands in exactly one row
	seen := map[string]int{}
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			for _, b := range cell.Blocks {
				seen[b.Class.ID]++
				if b.Offset < 0 || b.Offset >= 1 {
					t.Errorf("%s offset %v out of [0,1)", b.Class.ID, b.Offset)
				}
			}
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("%s placed %d times", id, n)
		}
	}
}

func TestHorizontalShortClassKeepsHeight(t *testing.T) {
	w := DefaultWindow()
	classes := []models.ClassSession{{ID: "q", CourseCode: "QZ1", Day: "Friday", TimeStart: "11:15", TimeEnd: "11:45"}}
	blocks := Horizontal(classes, w).Rows[3].Cells[4].Blocks
	if len(blocks) != 1 || blocks[0].Height != 0.5 || blocks[0].Offset != 0.25 {
		t.Errorf("30-minute class = %+v, want height 0.5 at offset 0.25", blocks)
	}
}

func TestHorizontalWeekendsAndBadTimes(t *testing.T) {
	w, _ := NewWindow(true, 8, 20)
	grid := Horizontal([]models.ClassSession{
		class("AR110", "sat", "10:00", "12:00"),
		class("XX000", "Friday", "", ""),
	}, w)

	if len(grid.Days) != 7 {
		t.Fatalf("days = %v", grid.Days)
	}
	if got := grid.Rows[2].Cells[5].Blocks; len(got) != 1 || got[0].Class.CourseCode != "AR110" {
		t.Errorf("saturday 10:00 = %+v", got)
	}
	// unparseable start reads as midnight, outside an 8-20 window
	if grid.Blocks() != 1 {
		t.Errorf("placed %d", grid.Blocks())
	}
}

func TestVertical(t *testing.T) {
	w := DefaultWindow()
	classes := []models.ClassSession{
		class("C", "Wednesday", "14:00", "15:00"),
		class("A", "Monday", "11:00", "12:00"),
		class("B", "Wednesday", "09:00", "10:00"),
		class("D", "Wednesday", "14:00", "16:00"),
		class("E", "Sunday", "10:00", "11:00"),
	}
	groups := Vertical(classes, w)

	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Day != "Monday" || groups[1].Day != "Wednesday" {
		t.Errorf("days = %s, %s", groups[0].Day, groups[1].Day)
	}
	var order string
	for _, c := range groups[1].Classes {
		order += c.CourseCode
	}
	if order != "BCD" {
		t.Errorf("wednesday order = %s, want BCD", order)
	}

	w.ShowWeekends = true
	if groups := Vertical(classes, w); len(groups) != 3 || groups[2].Day != "Sunday" {
		t.Errorf("with weekends = %+v", groups)
	}
	if groups := Vertical(nil, w); len(groups) != 0 {
		t.Errorf("empty = %+v", groups)
	}
}

func TestMonthAndTwoWeekDays(t *testing.T) {
	// March 2024 starts on a Friday
	selected := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	month := MonthDays(selected)
	if len(month) != 42 {
		t.Fatalf("month days = %d", len(month))
	}
	if got := month[0].Format(models.DateLayout); got != "2024-02-25" {
		t.Errorf("month start = %s", got)
	}
	if month[0].Weekday() != time.Sunday {
		t.Error("month must start on Sunday")
	}

	two := TwoWeekDays(selected)
	if len(two) != 14 || two[0].Format(models.DateLayout) != "2024-03-10" {
		t.Errorf("two-week start = %s", two[0].Format(models.DateLayout))
	}

	// a month starting on Sunday starts on its own first day
	sep := MonthDays(time.Date(2024, 9, 20, 0, 0, 0, 0, time.UTC))
	if sep[0].Format(models.DateLayout) != "2024-09-01" {
		t.Errorf("september start = %s", sep[0].Format(models.DateLayout))
	}
}

func TestCalendarCapsEvents(t *testing.T) {
	selected := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	var events []models.CalendarEvent
	for i := 0; i < 5; i++ {
		events = append(events, models.CalendarEvent{ID: fmt.Sprint(i), Title: fmt.Sprint("ev", i), Date: "2024-03-15"})
	}
	events = append(events, models.CalendarEvent{ID: "feb", Title: "Feb", Date: "2024-02-26"})

	month := Calendar(ViewMonth, selected, selected, events)
	var day, feb CalendarDay
	for _, d := range month {
		switch d.Date {
		case "2024-03-15":
			day = d
		case "2024-02-26":
			feb = d
		}
	}
	if len(day.Events) != 3 || day.Hidden != 2 || !day.IsToday || !day.InMonth {
		t.Errorf("month day = %+v", day)
	}
	if day.Events[0].ID != "0" {
		t.Error("cap must keep the first events")
	}
	if feb.InMonth || len(feb.Events) != 1 {
		t.Errorf("leading day = %+v", feb)
	}

	two := Calendar(ViewTwoWeek, selected, selected, events)
	if len(two) != 14 {
		t.Fatalf("two-week days = %d", len(two))
	}
	for _, d := range two {
		if d.Date == "2024-03-15" && (len(d.Events) != 5 || d.Hidden != 0) {
			t.Errorf("two-week day = %+v", d)
		}
	}
}

package layout

import (
	"time"

	"github.com/balkashynov/jess/internal/models"
)

// View selects the event calendar layout
type View string

const (
	ViewMonth   View = "month"
	ViewTwoWeek View = "two-week"
)

// Events shown per day before the rest are counted as hidden
const (
	MonthDayCap   = 3
	TwoWeekDayCap = 10
)

// CalendarDay is one square of the event calendar
type CalendarDay struct {
	Date    string
	InMonth bool
	IsToday bool
	Events  []models.CalendarEvent
	Hidden  int
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sundayOnOrBefore(t time.Time) time.Time {
	t = midnight(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func daysFrom(start time.Time, n int) []time.Time {
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthDays returns six weeks starting the Sunday on or before the first of
// selected's month
func MonthDays(selected time.Time) []time.Time {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, time.UTC)
	return daysFrom(sundayOnOrBefore(first), 42)
}

// TwoWeekDays returns fourteen days starting the Sunday of selected's week
func TwoWeekDays(selected time.Time) []time.Time {
	return daysFrom(sundayOnOrBefore(selected), 14)
}

// Calendar fills the chosen view with events. events should already be
// filtered and date-ordered, as EventStore.List returns them.
func Calendar(view View, selected, today time.Time, events []models.CalendarEvent) []CalendarDay {
	days := MonthDays(selected)
	limit := MonthDayCap
	if view == ViewTwoWeek {
		days = TwoWeekDays(selected)
		limit = TwoWeekDayCap
	}

	byDate := make(map[string][]models.CalendarEvent)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	todayKey := midnight(today).Format(models.DateLayout)
	out := make([]CalendarDay, len(days))
	for i, d := range days {
		key := d.Format(models.DateLayout)
		dayEvents := byDate[key]
		hidden := 0
		if len(dayEvents) > limit {
			hidden = len(dayEvents) - limit
			dayEvents = dayEvents[:limit]
		}
		out[i] = CalendarDay{
			Date:    key,
			InMonth: view == ViewTwoWeek || d.Month() == selected.Month(),
			IsToday: key == todayKey,
			Events:  dayEvents,
			Hidden:  hidden,
		}
	}
	return out
}

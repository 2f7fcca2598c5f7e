package commands

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
	"github.com/balkashynov/jess/internal/store"
)

func weekCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's class hours and events",
		Long: `Show a weekly sheet of class hours per course grouped by day, followed by
the events and open tasks of each day.

The week runs Monday to Sunday. Weekend columns appear only when something
is scheduled on them.`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			ref := now()
			if day != "" {
				d, err := parser.ParseDate(day, ref)
				if err != nil {
					return &models.ValidationError{Field: "date", Message: err.Error()}
				}
				ref, _ = time.ParseInLocation(models.DateLayout, d, ref.Location())
			}
			weekStart := getWeekStart(ref)
			first := weekStart.Format(models.DateLayout)
			last := weekStart.AddDate(0, 0, 6).Format(models.DateLayout)

			classes, err := app.Classes.List()
			if err != nil {
				return err
			}
			events, err := app.Events.List(store.Filter{From: first, To: last})
			if err != nil {
				return err
			}
			tasks := make(map[time.Weekday][]models.Task)
			for i := 0; i < 7; i++ {
				d := weekStart.AddDate(0, 0, i)
				list, err := app.Tasks.ForDate(d.Format(models.DateLayout))
				if err != nil {
					return err
				}
				tasks[d.Weekday()] = list
			}

			sheet := newWeekSheet(classes)
			active := sheet.activeDays()
			for _, ev := range events {
				if t, err := time.Parse(models.DateLayout, ev.Date); err == nil {
					active[t.Weekday()] = true
				}
			}
			for wd, list := range tasks {
				if len(list) > 0 {
					active[wd] = true
				}
			}

			days := daysToShow(active)
			if len(sheet.rows) > 0 {
				sheet.print(app, days)
			} else {
				app.printf("No classes in your timetable.\n")
			}
			printWeekAgenda(app, weekStart, events, tasks)

			app.printf("\nWeek of %s to %s\n", weekStart.Format("Jan 2"), weekStart.AddDate(0, 0, 6).Format("Jan 2, 2006"))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&day, "date", "d", "", "any date inside the week (default today)")
	return cmd
}

// getWeekStart returns the start of the calendar week (Monday) for the given time
func getWeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	daysFromMonday := int(weekday - time.Monday)
	if weekday == time.Sunday {
		daysFromMonday = 6
	}
	weekStart := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
}

var sheetDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

// daysToShow is Monday to Friday plus any active weekend day
func daysToShow(active map[time.Weekday]bool) []time.Weekday {
	var days []time.Weekday
	for i, wd := range sheetDays {
		if i < 5 || active[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// weekSheet holds class hours per course and weekday
type weekSheet struct {
	rows  []string
	hours map[string]map[time.Weekday]float64
}

func newWeekSheet(classes []models.ClassSession) weekSheet {
	s := weekSheet{hours: make(map[string]map[time.Weekday]float64)}
	for _, c := range classes {
		if c.Day == "" {
			continue
		}
		start, end := parser.ParseClockTime(c.TimeStart), parser.ParseClockTime(c.TimeEnd)
		if end <= start {
			continue
		}
		key := c.CourseCode
		if key == "" {
			key = orDefault(c.CourseName, "Untitled")
		}
		if _, ok := s.hours[key]; !ok {
			s.hours[key] = make(map[time.Weekday]float64)
			s.rows = append(s.rows, key)
		}
		s.hours[key][parser.Weekday(c.Day)] += end - start
	}
	sort.Strings(s.rows)
	return s
}

func (s weekSheet) activeDays() map[time.Weekday]bool {
	active := make(map[time.Weekday]bool)
	for _, byDay := range s.hours {
		for wd := range byDay {
			active[wd] = true
		}
	}
	return active
}

func dayAbbrev(wd time.Weekday) string {
	return wd.String()[:3]
}

// formatHours prints hours without trailing zeros, "-" for none
func formatHours(h float64) string {
	if h == 0 {
		return "-"
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func (s weekSheet) print(app *App, days []time.Weekday) {
	nameWidth := 20
	for _, r := range s.rows {
		if len(r) > nameWidth {
			nameWidth = len(r)
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}
	const dayWidth, totalWidth = 5, 7

	separator := func() {
		app.printf("%s", strings.Repeat("-", nameWidth))
		for range days {
			app.printf("  %s", strings.Repeat("-", dayWidth-2))
		}
		app.printf("  %s\n", strings.Repeat("-", totalWidth-2))
	}

	app.printf("%-*s", nameWidth, "Course")
	for _, wd := range days {
		app.printf("  %*s", dayWidth-2, dayAbbrev(wd))
	}
	app.printf("  %*s\n", totalWidth-2, "Total")
	separator()

	dayTotals := make(map[time.Weekday]float64)
	grand := 0.0
	for _, r := range s.rows {
		app.printf("%-*s", nameWidth, truncate(r, nameWidth))
		rowTotal := 0.0
		for _, wd := range days {
			h := s.hours[r][wd]
			app.printf("  %*s", dayWidth-2, formatHours(h))
			dayTotals[wd] += h
			rowTotal += h
		}
		app.printf("  %*s\n", totalWidth-2, formatHours(rowTotal))
		grand += rowTotal
	}

	separator()
	app.printf("%-*s", nameWidth, "Total")
	for _, wd := range days {
		t := formatHours(dayTotals[wd])
		if t == "-" {
			t = "0"
		}
		app.printf("  %*s", dayWidth-2, t)
	}
	app.printf("  %*s\n", totalWidth-2, formatHours(grand))
}

func printWeekAgenda(app *App, weekStart time.Time, events []models.CalendarEvent, tasks map[time.Weekday][]models.Task) {
	byDate := make(map[string][]models.CalendarEvent)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	printed := false
	for i, wd := range sheetDays {
		d := weekStart.AddDate(0, 0, i)
		date := d.Format(models.DateLayout)
		evs := byDate[date]
		var open []models.Task
		for _, t := range tasks[wd] {
			if !t.Completed {
				open = append(open, t)
			}
		}
		if len(evs) == 0 && len(open) == 0 {
			continue
		}

		if !printed {
			app.printf("\nAgenda\n")
			printed = true
		}
		app.printf("\n%s %s\n", dayAbbrev(wd), d.Format("Jan 2"))
		for _, ev := range evs {
			clock := orDefault(ev.Time, "all day")
			mark := ""
			if ev.Type == models.EventCompleted {
				mark = " ✓"
			}
			app.printf("  %-7s %s%s\n", clock, ev.Title, mark)
		}
		for _, t := range open {
			app.printf("  [ ]     %s\n", t.Title)
		}
	}
}

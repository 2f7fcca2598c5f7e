package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
	"github.com/balkashynov/jess/internal/recurrence"
)

const productID = "-//jess//student planner//EN"

// ReminderTrigger fires the display alarm of a reminder event
const ReminderTrigger = "-PT15M"

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	return cal
}

// ICS renders events as an iCalendar feed. Events without a time become
// all-day entries; timed events last one hour in loc.
func ICS(events []models.CalendarEvent, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	cal := newCalendar()

	for _, ev := range events {
		day, err := time.ParseInLocation(models.DateLayout, ev.Date, loc)
		if err != nil {
			return "", fmt.Errorf("event %s has invalid date %q: %w", ev.ID, ev.Date, err)
		}

		vev := cal.AddEvent(ev.ID + "@jess")
		vev.SetDtStampTime(stamp(ev.CreatedAt))
		vev.SetSummary(ev.Title)
		if ev.Description != "" {
			vev.SetDescription(ev.Description)
		}
		if ev.Category != "" {
			vev.SetProperty(ical.ComponentPropertyCategories, string(ev.Category))
		}
		if ev.ParentID != "" {
			vev.SetProperty(ical.ComponentPropertyRelatedTo, ev.ParentID+"@jess")
		}

		if ev.Time == "" {
			vev.SetAllDayStartAt(day)
			vev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		} else {
			start := day.Add(clockOffset(ev.Time))
			vev.SetStartAt(start)
			vev.SetEndAt(start.Add(time.Hour))
		}

		if ev.Reminder {
			alarm := vev.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(ReminderTrigger)
		}
	}

	return cal.Serialize(), nil
}

// TimetableICS renders each class as a weekly recurring event starting at
// its next occurrence after today and repeating for weeks weeks.
func TimetableICS(classes []models.ClassSession, today time.Time, weeks int, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	if weeks <= 0 {
		weeks = recurrence.DefaultSemesterWeeks
	}
	cal := newCalendar()
	now := time.Now()

	rule := rrule.ROption{Freq: rrule.WEEKLY, Count: weeks}

	for _, cls := range classes {
		anchor := recurrence.Anchor(today, cls.Day)
		day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

		start := day.Add(clockOffset(cls.TimeStart))
		end := day.Add(clockOffset(cls.TimeEnd))
		if !end.After(start) {
			end = start.Add(time.Hour)
		}

		id := cls.ID
		if id == "" {
			id = models.NewID()
		}
		vev := cal.AddEvent(id + "@jess")
		vev.SetDtStampTime(now)
		vev.SetSummary(fmt.Sprintf("%s - %s", cls.CourseCode, cls.Type))
		vev.SetDescription(fmt.Sprintf("%s\nInstructor: %s", cls.CourseName, cls.Instructor))
		if cls.Location != "" {
			vev.SetLocation(cls.Location)
		}
		vev.SetStartAt(start)
		vev.SetEndAt(end)
		vev.AddRrule(rule.RRuleString())
	}

	return cal.Serialize(), nil
}

func clockOffset(clock string) time.Duration {
	return time.Duration(parser.ParseClockTime(clock) * float64(time.Hour)).Round(time.Minute)
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

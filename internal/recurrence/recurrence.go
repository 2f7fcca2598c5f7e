// Package recurrence expands weekly repeating events and timetable classes
// into dated calendar events.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

const (
	// DefaultExtraWeeks is how many copies a recurring event gets after the first
	DefaultExtraWeeks = 4
	// DefaultSemesterWeeks is the length of a timetable sync
	DefaultSemesterWeeks = 15
)

// IDFunc mints identifiers for generated events
type IDFunc func() string

// weeklyDates returns count dates one week apart starting at start
func weeklyDates(start time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, nil
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   count,
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}
	return r.All(), nil
}

// Weekly returns base followed by extra copies at base+7, base+14, ...
// days. Each copy gets a fresh id and points back at base through
// ParentID. A base without an id is given one first; a negative extra
// means no copies.
func Weekly(base models.CalendarEvent, extra int, newID IDFunc) ([]models.CalendarEvent, error) {
	start, err := time.Parse(models.DateLayout, base.Date)
	if err != nil {
		return nil, &models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD, got '" + base.Date + "'"}
	}
	if newID == nil {
		newID = models.NewID
	}
	if base.ID == "" {
		base.ID = newID()
	}
	if extra < 0 {
		extra = 0
	}

	dates, err := weeklyDates(start, extra+1)
	if err != nil {
		return nil, err
	}

	out := []models.CalendarEvent{base}
	if len(dates) < 2 {
		return out, nil
	}
	for _, d := range dates[1:] {
		occ := base
		occ.ID = newID()
		occ.Date = d.Format(models.DateLayout)
		occ.ParentID = base.ID
		out = append(out, occ)
	}
	return out, nil
}

// Anchor returns the first date on or after today that falls on day
func Anchor(today time.Time, day string) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	target := parser.Weekday(day)
	offset := (int(target) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, offset)
}

// Semester turns each class into weeks weekly study events starting at the
// class's next occurrence. Generated events carry no parent link. A start
// time that cannot be read leaves the events without a time.
func Semester(classes []models.ClassSession, today time.Time, weeks int, newID IDFunc) ([]models.CalendarEvent, error) {
	if newID == nil {
		newID = models.NewID
	}
	created := time.Now()

	var out []models.CalendarEvent
	for _, cls := range classes {
		clock, err := parser.NormalizeClockTime(cls.TimeStart)
		if err != nil {
			clock = ""
		}
		dates, err := weeklyDates(Anchor(today, cls.Day), weeks)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			out = append(out, models.CalendarEvent{
				ID:          newID(),
				UserID:      models.DefaultUserID,
				Type:        models.EventFuture,
				Date:        d.Format(models.DateLayout),
				Time:        clock,
				Title:       fmt.Sprintf("%s - %s", cls.CourseCode, cls.Type),
				Category:    models.CategoryStudy,
				Description: fmt.Sprintf("%s\nLocation: %s\nInstructor: %s", cls.CourseName, cls.Location, cls.Instructor),
				CreatedAt:   created,
			})
		}
	}
	return out, nil
}

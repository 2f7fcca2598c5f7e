package parser

import (
	"strings"
	"time"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var weekdayValues = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// NormalizeDayName maps free text to a full weekday name.
// The first weekday (Monday first) whose three-letter prefix appears anywhere
// in the input wins, case-insensitively: "Wed 10am class" -> "Wednesday".
// Input with no match defaults to "Monday".
func NormalizeDayName(raw string) string {
	lower := strings.ToLower(raw)
	for _, day := range weekdayNames {
		if strings.Contains(lower, strings.ToLower(day[:3])) {
			return day
		}
	}
	return "Monday"
}

// Weekday returns the time.Weekday for a (possibly informal) day name
func Weekday(day string) time.Weekday {
	return weekdayValues[NormalizeDayName(day)]
}

// WeekDays returns the visible weekday columns, Monday first
func WeekDays(showWeekends bool) []string {
	n := 5
	if showWeekends {
		n = 7
	}
	days := make([]string, n)
	copy(days, weekdayNames[:n])
	return days
}

package parser

import (
	"regexp"
	"strings"
	"time"
)

var (
	categoryRegex  = regexp.MustCompile(`#([a-zA-Z]+)`)
	atRegex        = regexp.MustCompile(`\bat:([^\s]+(?:\s*(?:am|pm))?)`)
	onRegex        = regexp.MustCompile(`\bon:([^\s]+)`)
	inRegex        = regexp.MustCompile(`\bin:(\d+\s*(?:days?|d|weeks?|w))\b`)
	recurringRegex = regexp.MustCompile(`(?i)\+(weekly|recurring)\b`)
	reminderRegex  = regexp.MustCompile(`(?i)!(remind|reminder)\b`)
)

// QuickEvent represents an event parsed from one line of shorthand
type QuickEvent struct {
	Title     string
	Category  string
	Time      string
	Date      string
	Recurring bool
	Reminder  bool
	Errors    []string
}

// ParseQuickEvent extracts event fields from shorthand syntax
// Syntax: "Quiz prep #study at:14:00 on:tomorrow +weekly !remind"
// Date defaults to today when no on:/in: token is given.
func ParseQuickEvent(input string, now time.Time) QuickEvent {
	result := QuickEvent{Errors: []string{}}

	// Extract category (#study, #work ...)
	if matches := categoryRegex.FindStringSubmatch(input); len(matches) > 1 {
		category := strings.ToLower(matches[1])
		if isValidCategory(category) {
			result.Category = category
		} else {
			result.Errors = append(result.Errors, "Invalid category '"+matches[1]+"'. Use: study, work, personal, or other")
		}
		input = categoryRegex.ReplaceAllString(input, "")
	}

	// Extract time (at:14:00, at:2pm)
	if matches := atRegex.FindStringSubmatch(input); len(matches) > 1 {
		clock, err := NormalizeClockTime(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Time = clock
		}
		input = atRegex.ReplaceAllString(input, "")
	}

	// Extract date (on:2024-03-01, on:tomorrow, in:3days)
	dateToken := ""
	if matches := onRegex.FindStringSubmatch(input); len(matches) > 1 {
		dateToken = matches[1]
		input = onRegex.ReplaceAllString(input, "")
	} else if matches := inRegex.FindStringSubmatch(input); len(matches) > 1 {
		dateToken = matches[1]
		input = inRegex.ReplaceAllString(input, "")
	}
	if dateToken != "" {
		date, err := ParseDate(dateToken, now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+dateToken+"': "+err.Error())
		} else {
			result.Date = date
		}
	} else {
		result.Date = now.Format(isoDate)
	}

	if recurringRegex.MatchString(input) {
		result.Recurring = true
		input = recurringRegex.ReplaceAllString(input, "")
	}

	if reminderRegex.MatchString(input) {
		result.Reminder = true
		input = reminderRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// isValidCategory checks if a category value is valid
func isValidCategory(category string) bool {
	validCategories := map[string]bool{
		"study":    true,
		"work":     true,
		"personal": true,
		"other":    true,
	}
	return validCategories[category]
}

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(\d+)\s*(day|days|d|week|weeks|w)$`)
)

// ParseDate parses the date forms accepted on the command line and returns
// an ISO "YYYY-MM-DD" string.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-01-15")
// - dd/mm/yyyy (e.g., "15/01/2024")
// - "today", "tomorrow"
// - X days / X weeks (e.g., "3 days", "2w")
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("date is empty")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return today.Format(isoDate), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(isoDate), nil
	}

	if t, err := time.Parse(isoDate, input); err == nil {
		return t.Format(isoDate), nil
	}

	if date, err := parseSlashDate(input); err == nil {
		return date, nil
	}

	if date, err := parseRelativeDate(input, today); err == nil {
		return date, nil
	}

	return "", fmt.Errorf("invalid date '%s'. Use: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, or X weeks", input)
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (string, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return "", fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March; reject that
	if date.Day() != day || date.Month() != time.Month(month) {
		return "", fmt.Errorf("invalid date")
	}

	return date.Format(isoDate), nil
}

// parseRelativeDate parses "3 days", "2 weeks", "5d" relative to today
func parseRelativeDate(input string, today time.Time) (string, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return "", fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days", "d":
		if amount > 366 {
			return "", fmt.Errorf("days must be at most 366")
		}
		return today.AddDate(0, 0, amount).Format(isoDate), nil
	default:
		if amount > 52 {
			return "", fmt.Errorf("weeks must be at most 52")
		}
		return today.AddDate(0, 0, amount*7).Format(isoDate), nil
	}
}

// FormatRelativeDate describes an ISO date relative to today for listings
func FormatRelativeDate(date string, now time.Time) string {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(today).Hours() / 24)

	switch {
	case days < -1:
		return fmt.Sprintf("%s (%d days ago)", date, -days)
	case days == -1:
		return fmt.Sprintf("%s (yesterday)", date)
	case days == 0:
		return fmt.Sprintf("%s (today)", date)
	case days == 1:
		return fmt.Sprintf("%s (tomorrow)", date)
	case days <= 7:
		return fmt.Sprintf("%s (in %d days)", date, days)
	default:
		return date
	}
}

package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRegex = regexp.MustCompile(`^(\d{1,2})(?:\s*[:.]\s*(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?$`)

// ParseClockTime converts a clock string to fractional hours.
// Accepted forms:
// - 24h "HH:mm" or "H:mm" (e.g., "09:30" -> 9.5)
// - informal 12h (e.g., "10am", "2:30pm", "12pm" -> 12, "12am" -> 0)
// Anything it cannot read yields 0 so rendering never fails on bad input.
func ParseClockTime(s string) float64 {
	hours, ok := parseClock(s)
	if !ok {
		return 0
	}
	return hours
}

// parseClock is ParseClockTime with an explicit success flag
func parseClock(s string) (float64, bool) {
	matches := clockRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if matches == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	minute := 0
	if matches[2] != "" {
		if minute, err = strconv.Atoi(matches[2]); err != nil || minute > 59 {
			return 0, false
		}
	}

	switch strings.ReplaceAll(matches[3], ".", "") {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, false
		}
	}

	return float64(hour) + float64(minute)/60, true
}

// FormatClockTime formats fractional hours as "HH:mm", rounding to the
// nearest minute and wrapping past midnight.
func FormatClockTime(hours float64) string {
	if math.IsNaN(hours) || hours < 0 {
		hours = 0
	}
	total := int(math.Round(hours*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// IsClockTime reports whether s is a strict zero-padded 24h "HH:mm" value
func IsClockTime(s string) bool {
	t, err := time.Parse("15:04", s)
	return err == nil && t.Format("15:04") == s
}

// NormalizeClockTime rewrites any accepted clock form as "HH:mm".
// Returns an error for input ParseClockTime would silently zero.
func NormalizeClockTime(s string) (string, error) {
	hours, ok := parseClock(s)
	if !ok {
		return "", fmt.Errorf("invalid time '%s'. Use: HH:mm, 10am, 2:30pm", s)
	}
	return FormatClockTime(hours), nil
}

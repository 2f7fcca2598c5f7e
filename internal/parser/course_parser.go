package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var courseCodeRegex = regexp.MustCompile(`^([A-Z]{2,6})[\s-]*(\d{3,5}[A-Z]?)$`)

// NormalizeCourseCode normalizes course codes to uppercase "CS101" form
// Accepts formats like:
// - "cs101", "CS 101", "cs-101" -> "CS101"
// - "MATH 2010a" -> "MATH2010A"
// Returns error if format is invalid
func NormalizeCourseCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", nil
	}

	matches := courseCodeRegex.FindStringSubmatch(code)
	if matches == nil {
		return "", fmt.Errorf("invalid course code '%s'. Use letters followed by digits, e.g. CS101", code)
	}

	return matches[1] + matches[2], nil
}

// IsValidCourseCode checks if a string looks like a course code
func IsValidCourseCode(code string) bool {
	if code == "" {
		return true // optional field
	}
	return courseCodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

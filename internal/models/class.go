package models

import "strings"

// ClassSession types offered in the timetable editor
const (
	ClassLecture  = "Lecture"
	ClassTutorial = "Tutorial"
	ClassLab      = "Lab"
)

// ClassSession represents one weekly slot in a timetable
type ClassSession struct {
	ID         string `json:"id" yaml:"id"`
	CourseCode string `json:"courseCode" yaml:"course_code"`
	CourseName string `json:"courseName" yaml:"course_name"`
	Day        string `json:"day" yaml:"day"`
	TimeStart  string `json:"timeStart" yaml:"time_start"`
	TimeEnd    string `json:"timeEnd" yaml:"time_end"`
	Location   string `json:"location" yaml:"location"`
	Type       string `json:"type" yaml:"type"`
	Instructor string `json:"instructor" yaml:"instructor"`
}

// NewBlankClass returns the placeholder row added by "add class"
func NewBlankClass() ClassSession {
	return ClassSession{
		ID:         NewID(),
		CourseName: "New Class",
		Day:        "Monday",
		TimeStart:  "08:00",
		TimeEnd:    "09:00",
		Type:       ClassLecture,
	}
}

// Normalize fills missing optional fields with defaults
func (c *ClassSession) Normalize() {
	if c.ID == "" {
		c.ID = NewID()
	}
	if strings.TrimSpace(c.Type) == "" {
		c.Type = ClassLecture
	}
	c.TimeStart = strings.TrimSpace(c.TimeStart)
	c.TimeEnd = strings.TrimSpace(c.TimeEnd)
}

// ValidateTimes checks start/end for manually entered classes. Imported
// classes skip this; the grid clamps bad durations instead.
func (c ClassSession) ValidateTimes() error {
	if !isClock(c.TimeStart) {
		return &ValidationError{Field: "timeStart", Message: "start must be HH:mm, got " + quote(c.TimeStart)}
	}
	if !isClock(c.TimeEnd) {
		return &ValidationError{Field: "timeEnd", Message: "end must be HH:mm, got " + quote(c.TimeEnd)}
	}
	// zero-padded HH:mm compares lexically
	if c.TimeEnd <= c.TimeStart {
		return &ValidationError{Field: "timeEnd", Message: "end must be later than start"}
	}
	return nil
}

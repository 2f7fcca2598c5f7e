// Package export writes timetables and events to files: CSV, JSON, iCalendar,
// YAML and a printable PDF sheet.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/jess/internal/models"
)

// Default file names
const (
	TimetableCSVName  = "jess_timetable.csv"
	TimetableYAMLName = "jess_timetable.yml"
	TimetablePDFName  = "jess_timetable.pdf"
	TimetableICSName  = "jess_timetable.ics"
	EventsICSName     = "jess_events.ics"
)

// EventsJSONName returns the dated file name of an event export
func EventsJSONName(now time.Time) string {
	return fmt.Sprintf("jess_events_export_%s.json", now.Format(models.DateLayout))
}

var csvHeader = []string{"Course Code", "Course Name", "Day", "Start", "End", "Location", "Type", "Instructor"}

// CSV renders classes as comma-joined rows under a fixed header. Fields are
// written verbatim, without quoting, and the last row has no newline.
func CSV(classes []models.ClassSession) string {
	rows := make([]string, len(classes))
	for i, c := range classes {
		rows[i] = strings.Join([]string{
			c.CourseCode, c.CourseName, c.Day, c.TimeStart, c.TimeEnd, c.Location, c.Type, c.Instructor,
		}, ",")
	}
	return strings.Join(csvHeader, ",") + "\n" + strings.Join(rows, "\n")
}

// JSON pretty-prints v with two-space indentation
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// timetableDoc is the YAML document layout
type timetableDoc struct {
	Classes []models.ClassSession `yaml:"classes"`
}

// YAML renders the timetable as an editable YAML document
func YAML(classes []models.ClassSession) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(timetableDoc{Classes: classes}); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadYAML parses a document written by YAML, normalising each class
func ReadYAML(r io.Reader) ([]models.ClassSession, error) {
	var doc timetableDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []models.ClassSession{}, nil
		}
		return nil, fmt.Errorf("failed to parse timetable yaml: %w", err)
	}
	for i := range doc.Classes {
		doc.Classes[i].Normalize()
	}
	if doc.Classes == nil {
		doc.Classes = []models.ClassSession{}
	}
	return doc.Classes, nil
}

// Package timetable turns raw schedule text into class sessions with the
// help of an AI completer.
package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/balkashynov/jess/internal/ai"
	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

var (
	ErrEmptyInput  = errors.New("please paste a schedule first")
	ErrUnparseable = errors.New("AI failed to extract schedule accurately. Please try editing the text manually")
	ErrNoClasses   = errors.New("no classes found. Please add a class to proceed")
	ErrImageSource = errors.New("image scanning requires OCR. Please supply the raw text schedule for now")
	ErrPDFSource   = errors.New("PDF text extraction is not supported. Copy the schedule text out of the PDF and paste it instead")
	ErrEmptySource = errors.New("no text content found")
)

// Importer extracts classes from pasted schedule text
type Importer struct {
	ai ai.Completer
}

func NewImporter(c ai.Completer) *Importer {
	return &Importer{ai: c}
}

// Prompt builds the extraction request sent to the AI
func Prompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are a timetable data extractor. I have provided raw text representing a university or school schedule.\n")
	sb.WriteString("Extract EVERY class session available.\n")
	sb.WriteString("Map each to exactly this JSON Array format (DO NOT WRAP IN BACKTICKS OR MARKDOWN, purely return RAW JSON array):\n")
	sb.WriteString(`[
  {
    "id": "random_uuid() string",
    "courseCode": "e.g. CS101",
    "courseName": "e.g. Intro to Computer Science",
    "timeStart": "e.g. 10:00 (24h format HH:mm)",
    "timeEnd": "e.g. 12:00 (24h format HH:mm)",
    "day": "e.g. Monday (Full Day name)",
    "location": "e.g. Room 301",
    "type": "e.g. Lecture or Tutorial or Lab",
    "instructor": "e.g. Dr. Jane"
  }
]
`)
	sb.WriteString("\nIf you cannot find a specific field, leave it as an empty string \"\".\n")
	sb.WriteString("Raw Schedule Text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// Extract asks the AI for the classes in text. The result gets fresh ids,
// full day names and tidied codes and times; values the AI got wrong are
// kept as they are for the user to fix.
func (im *Importer) Extract(ctx context.Context, text string) ([]models.ClassSession, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	resp, err := im.ai.Complete(ctx, Prompt(text))
	if err != nil {
		return nil, fmt.Errorf("failed to extract timetable: %w", err)
	}

	classes, err := ParseClasses(resp)
	if err != nil {
		appLog.Error("timetable extraction unparseable", err, "provider", im.ai.Name(), "bytes", len(resp))
		return nil, err
	}

	appLog.Info("timetable extracted", "provider", im.ai.Name(), "classes", len(classes))
	return classes, nil
}

// ParseClasses decodes an AI answer into classes
func ParseClasses(resp string) ([]models.ClassSession, error) {
	var classes []models.ClassSession
	if err := json.Unmarshal([]byte(ai.StripFences(resp)), &classes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if classes == nil {
		classes = []models.ClassSession{}
	}

	for i := range classes {
		classes[i].ID = models.NewID()
		tidy(&classes[i])
		classes[i].Normalize()
	}
	return classes, nil
}

func tidy(c *models.ClassSession) {
	c.Day = parser.NormalizeDayName(c.Day)
	if code, err := parser.NormalizeCourseCode(c.CourseCode); err == nil {
		c.CourseCode = code
	}
	if t, err := parser.NormalizeClockTime(c.TimeStart); err == nil {
		c.TimeStart = t
	}
	if t, err := parser.NormalizeClockTime(c.TimeEnd); err == nil {
		c.TimeEnd = t
	}
}

// RequireClasses refuses to continue with an empty timetable
func RequireClasses(classes []models.ClassSession) error {
	if len(classes) == 0 {
		return ErrNoClasses
	}
	return nil
}

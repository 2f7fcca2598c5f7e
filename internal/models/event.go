package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType is the origin of a calendar entry
type EventType string

const (
	EventFuture     EventType = "future"
	EventAssignment EventType = "assignment"
	EventCompleted  EventType = "completed"
)

// Category groups events for colouring and filtering
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// DefaultUserID is used when no signed-in user is configured
const DefaultUserID = "guest"

// DateLayout is the ISO calendar date format used for every stored date
const DateLayout = "2006-01-02"

// CalendarEvent represents an entry in the future planner
type CalendarEvent struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        EventType `json:"type"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	IsRecurring bool      `json:"isRecurring"`
	Reminder    bool      `json:"reminder"`

	// ParentID points a generated occurrence back at the event it was
	// expanded from. Deleting the parent leaves occurrences alone.
	ParentID string `json:"has_parent_recurring,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewCalendarEvent creates a future event with default fields filled in
func NewCalendarEvent(title, date string) CalendarEvent {
	return CalendarEvent{
		ID:        NewID(),
		UserID:    DefaultUserID,
		Type:      EventFuture,
		Date:      date,
		Title:     strings.TrimSpace(title),
		Category:  CategoryStudy,
		CreatedAt: time.Now(),
	}
}

// Normalize fills missing optional fields with defaults
func (e *CalendarEvent) Normalize() {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.UserID == "" {
		e.UserID = DefaultUserID
	}
	if e.Type == "" {
		e.Type = EventFuture
	}
	if e.Category == "" {
		e.Category = CategoryStudy
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.Title = strings.TrimSpace(e.Title)
	e.Time = strings.TrimSpace(e.Time)
}

// Validate checks the event fields a user can get wrong
func (e CalendarEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !IsDate(e.Date) {
		return &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD, got " + quote(e.Date)}
	}
	if e.Time != "" && !isClock(e.Time) {
		return &ValidationError{Field: "time", Message: "time must be HH:mm, got " + quote(e.Time)}
	}
	switch e.Type {
	case EventFuture, EventAssignment, EventCompleted:
	default:
		return &ValidationError{Field: "type", Message: "unknown event type " + quote(string(e.Type))}
	}
	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category " + quote(string(e.Category))}
	}
	return nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryStudy, CategoryWork, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// Categories lists the categories in display order
func Categories() []Category {
	return []Category{CategoryStudy, CategoryWork, CategoryPersonal, CategoryOther}
}

// NewID returns a fresh opaque identifier
func NewID() string {
	return uuid.NewString()
}

// IsDate reports whether s is a valid ISO calendar date
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// isClock is a strict 24h HH:mm check; the permissive parser lives in
// internal/parser and is used for rendering only.
func isClock(s string) bool {
	t, err := time.Parse("15:04", s)
	return err == nil && t.Format("15:04") == s
}

func quote(s string) string {
	return "'" + s + "'"
}

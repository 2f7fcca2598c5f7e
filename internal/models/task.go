package models

import (
	"strings"
	"time"
)

// Task represents a daily planner item
type Task struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Date      string `json:"task_date"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  int    `json:"priority"` // position within the day, lower first
}

// Urgency levels for assignment analysis
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Assignment is a saved assignment analysis
type Assignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Urgency   string    `json:"urgency"`
	RawText   string    `json:"raw_text"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that a task has a usable title and date
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "task title is required"}
	}
	if !IsDate(t.Date) {
		return &ValidationError{Field: "task_date", Message: "date must be YYYY-MM-DD, got " + quote(t.Date)}
	}
	return nil
}

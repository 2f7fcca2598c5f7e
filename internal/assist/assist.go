// Package assist composes the prompts behind email drafting, assignment
// analysis and daily planning, and validates their input first.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/balkashynov/jess/internal/ai"
	"github.com/balkashynov/jess/internal/models"
)

// MinAssignmentChars is the shortest assignment text worth analysing
const MinAssignmentChars = 20

var (
	ErrNoKeyPoints    = errors.New("please enter key points for the email")
	ErrAssignmentText = fmt.Errorf("please paste your assignment text (at least %d characters)", MinAssignmentChars)
	ErrNoTasks        = errors.New("add at least one task before generating a schedule")
)

// Tones offered for email drafts, first is the default
var Tones = []string{"Professional", "Formal", "Friendly", "Casual", "Apologetic", "Persuasive"}

// Subjects offered for assignment analysis
var Subjects = []string{"Mathematics", "Computer Science", "Business", "Engineering", "Science", "Humanities", "Law", "Medicine", "Other"}

// Assistant runs prompt-based helpers against one AI provider
type Assistant struct {
	ai ai.Completer
}

func New(c ai.Completer) *Assistant {
	return &Assistant{ai: c}
}

// EmailRequest describes the email to draft
type EmailRequest struct {
	Recipient string
	Subject   string
	Tone      string
	KeyPoints string
}

// NormalizeTone matches tone case-insensitively against Tones. Empty means
// Professional.
func NormalizeTone(tone string) (string, error) {
	tone = strings.TrimSpace(tone)
	if tone == "" {
		return Tones[0], nil
	}
	for _, t := range Tones {
		if strings.EqualFold(t, tone) {
			return t, nil
		}
	}
	return "", &models.ValidationError{Field: "tone", Message: fmt.Sprintf("unknown tone '%s'. Use: %s", tone, strings.Join(Tones, ", "))}
}

// DraftEmail writes a ready-to-send email covering the key points
func (a *Assistant) DraftEmail(ctx context.Context, req EmailRequest) (string, error) {
	if strings.TrimSpace(req.KeyPoints) == "" {
		return "", ErrNoKeyPoints
	}
	tone, err := NormalizeTone(req.Tone)
	if err != nil {
		return "", err
	}

	recipient := orDefault(req.Recipient, "the recipient")
	subject := orDefault(req.Subject, "as appropriate")

	prompt := fmt.Sprintf(`You are an expert email writer optimized for Malaysian university students and young professionals.

Write a %s email with the following details:
- To: %s
- Subject: %s
- Key points to cover: %s

Requirements:
1. Write a complete, ready-to-send email (include greeting, body, closing, signature placeholder)
2. Tone: %s
3. Keep it concise but complete
4. Use clear, professional Malaysian English
5. No extra commentary, just the email content.`, strings.ToLower(tone), recipient, subject, req.KeyPoints, tone)

	return a.ai.Complete(ctx, prompt)
}

// AssignmentRequest describes the assignment to analyse
type AssignmentRequest struct {
	Title   string
	Subject string
	Urgency string
	RawText string
}

// AnalyzeAssignment returns a structured breakdown ready to be saved
func (a *Assistant) AnalyzeAssignment(ctx context.Context, req AssignmentRequest) (models.Assignment, error) {
	if utf8.RuneCountInString(strings.TrimSpace(req.RawText)) < MinAssignmentChars {
		return models.Assignment{}, ErrAssignmentText
	}

	urgency := strings.ToLower(orDefault(req.Urgency, models.UrgencyMedium))
	switch urgency {
	case models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh:
	default:
		return models.Assignment{}, &models.ValidationError{Field: "urgency", Message: "urgency must be low, medium or high, got '" + urgency + "'"}
	}

	title := orDefault(req.Title, "Untitled")
	subject := orDefault(req.Subject, "Computer Science")

	prompt := fmt.Sprintf(`You are an academic productivity assistant for Malaysian university students.

Analyze the following assignment and provide a structured breakdown:

Assignment Title: %s
Subject: %s
Urgency: %s priority
Assignment Text:
"""
%s
"""

Provide your analysis in this EXACT format:

## 📋 Assignment Summary
[2-3 sentence summary of what's required]

## ✅ Task Breakdown
[Numbered list of specific tasks to complete]

## ⏰ Suggested Timeline
[Day-by-day study plan based on urgency level]

## 📚 Key Topics to Study
[Bullet list of concepts/topics to review]

## 💡 Tips for Success
[2-3 specific study or writing tips]

## ⚠️ Watch Out For
[Common mistakes or tricky parts]`, title, subject, urgency, req.RawText)

	analysis, err := a.ai.Complete(ctx, prompt)
	if err != nil {
		return models.Assignment{}, err
	}

	return models.Assignment{
		ID:        models.NewID(),
		Title:     title,
		Subject:   subject,
		Urgency:   urgency,
		RawText:   req.RawText,
		Analysis:  analysis,
		CreatedAt: time.Now(),
	}, nil
}

// PlanDay asks for a time-blocked schedule of the day's tasks, in the
// order given
func (a *Assistant) PlanDay(ctx context.Context, date string, tasks []models.Task) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasks
	}

	var list strings.Builder
	for i, t := range tasks {
		if i > 0 {
			list.WriteString("\n")
		}
		fmt.Fprintf(&list, "%d. %s", i+1, t.Title)
	}

	prompt := fmt.Sprintf(`You are a productivity coach for a Malaysian university student or young professional.

Date: %s
Tasks for today:
%s

Create a realistic, time-blocked daily schedule. Requirements:
1. Organize tasks by priority (most important/urgent first)
2. Include specific time blocks (e.g., 9:00 AM - 10:30 AM)
3. Add short breaks (5-15 min) between focus sessions
4. Include a lunch break
5. Account for typical Malaysian student schedule (classes, transport, etc.)
6. End by 10 PM

Format your response as:
## 📅 Your AI-Powered Day Plan for %s

[Time-blocked schedule with emojis]

## 🎯 Priority Order
[Ranked list with reasoning]

## 💪 Motivational Tip
[One short, specific tip for today]`, date, list.String(), date)

	return a.ai.Complete(ctx, prompt)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

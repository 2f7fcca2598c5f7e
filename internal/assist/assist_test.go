package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/balkashynov/jess/internal/ai"
	"github.com/balkashynov/jess/internal/models"
)

type recorder struct {
	prompts []string
	reply   string
	err     error
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Complete(ctx context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func TestDraftEmail(t *testing.T) {
	rec := &recorder{reply: "Dear Dr. Lim, ..."}
	a := New(rec)

	got, err := a.DraftEmail(context.Background(), EmailRequest{Recipient: "Dr. Lim", Tone: "friendly", KeyPoints: "extension for lab 3"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Dear Dr. Lim, ..." {
		t.Errorf("draft = %q", got)
	}
	p := rec.prompts[0]
	for _, want := range []string{"Write a friendly email", "- To: Dr. Lim", "- Subject: as appropriate", "extension for lab 3", "Tone: Friendly"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestDraftEmailValidation(t *testing.T) {
	rec := &recorder{}
	a := New(rec)

	if _, err := a.DraftEmail(context.Background(), EmailRequest{KeyPoints: "  "}); !errors.Is(err, ErrNoKeyPoints) {
		t.Errorf("no key points: %v", err)
	}
	if _, err := a.DraftEmail(context.Background(), EmailRequest{KeyPoints: "hi", Tone: "sarcastic"}); !models.IsValidation(err) {
		t.Errorf("bad tone: %v", err)
	}
	if len(rec.prompts) != 0 {
		t.Error("invalid requests must not reach the AI")
	}

	tone, _ := NormalizeTone("")
	if tone != "Professional" {
		t.Errorf("default tone = %s", tone)
	}
}

func TestAnalyzeAssignment(t *testing.T) {
	rec := &recorder{reply: "## Summary"}
	a := New(rec)

	if _, err := a.AnalyzeAssignment(context.Background(), AssignmentRequest{RawText: "too short"}); !errors.Is(err, ErrAssignmentText) {
		t.Errorf("short text: %v", err)
	}
	if _, err := a.AnalyzeAssignment(context.Background(), AssignmentRequest{RawText: strings.Repeat("x", 25), Urgency: "yesterday"}); !models.IsValidation(err) {
		t.Errorf("bad urgency: %v", err)
	}

	text := "Write a 2000 word essay on the causes of WWI."
	got, err := a.AnalyzeAssignment(context.Background(), AssignmentRequest{RawText: text, Urgency: "HIGH"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Untitled" || got.Subject != "Computer Science" || got.Urgency != models.UrgencyHigh {
		t.Errorf("defaults = %+v", got)
	}
	if got.Analysis != "## Summary" || got.RawText != text || got.ID == "" {
		t.Errorf("result = %+v", got)
	}
	if !strings.Contains(rec.prompts[0], "Urgency: high priority") {
		t.Errorf("prompt = %q", rec.prompts[0])
	}
}

func TestAnalyzeAssignmentProviderError(t *testing.T) {
	perr := &ai.ProviderError{Provider: "Gemini", StatusCode: 500, Message: "boom"}
	_, err := New(&recorder{err: perr}).AnalyzeAssignment(context.Background(), AssignmentRequest{RawText: strings.Repeat("a", 30)})
	if !errors.Is(err, perr) {
		t.Errorf("err = %v", err)
	}
}

func TestPlanDay(t *testing.T) {
	rec := &recorder{reply: "plan"}
	a := New(rec)

	if _, err := a.PlanDay(context.Background(), "2024-03-01", nil); !errors.Is(err, ErrNoTasks) {
		t.Errorf("no tasks: %v", err)
	}

	tasks := []models.Task{{Title: "Read chapter 3"}, {Title: "Gym"}}
	if _, err := a.PlanDay(context.Background(), "2024-03-01", tasks); err != nil {
		t.Fatal(err)
	}
	p := rec.prompts[0]
	if !strings.Contains(p, "Tasks for today:\n1. Read chapter 3\n2. Gym\n") || !strings.Contains(p, "Day Plan for 2024-03-01") {
		t.Errorf("prompt = %q", p)
	}
}

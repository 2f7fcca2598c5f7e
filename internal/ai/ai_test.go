package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"groq wins", Config{GroqAPIKey: "g", GeminiAPIKey: "m"}, "Groq"},
		{"gemini only", Config{GeminiAPIKey: "m"}, "Gemini"},
		{"blank keys", Config{GroqAPIKey: "  "}, "mock"},
		{"none", Config{}, "mock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.cfg).Name(); got != tt.want {
				t.Errorf("Select = %s, want %s", got, tt.want)
			}
		})
	}
	if !IsMock(Select(Config{})) {
		t.Error("IsMock(Select(empty)) = false")
	}
}

func TestGroqComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if req.Model != DefaultGroqModel || req.MaxTokens != 2048 || req.Temperature != 0.7 {
			t.Errorf("request = %+v", req)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hello" {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	g := NewGroq("secret", "", srv.URL, srv.Client())
	got, err := g.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi there" {
		t.Errorf("Complete = %q", got)
	}
}

func TestGroqEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	got, err := NewGroq("k", "", srv.URL, srv.Client()).Complete(context.Background(), "x")
	if err != nil || got != "" {
		t.Errorf("Complete = %q, %v", got, err)
	}
}

func TestProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"provider message", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key"}}`, "Invalid API Key"},
		{"no body", http.StatusInternalServerError, ``, "Groq API error"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "Groq API error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGroq("k", "", srv.URL, srv.Client()).Complete(context.Background(), "x")
			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if perr.StatusCode != tt.status || perr.Message != tt.message || perr.Provider != "Groq" {
				t.Errorf("error = %+v", perr)
			}
		})
	}
}

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "gem key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) == 0 {
			t.Errorf("decode: %v", err)
			return
		}
		if req.GenerationConfig.MaxOutputTokens != 2048 || req.Contents[0].Parts[0].Text != "plan my day" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"09:00 study"}]}}]}`))
	}))
	defer srv.Close()

	got, err := NewGemini("gem key", "", srv.URL, srv.Client()).Complete(context.Background(), "plan my day")
	if err != nil {
		t.Fatal(err)
	}
	if got != "09:00 study" {
		t.Errorf("Complete = %q", got)
	}
}

func TestGeminiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := NewGemini("k", "", srv.URL, srv.Client()).Complete(context.Background(), "x")
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Message != "Quota exceeded" || perr.Provider != "Gemini" {
		t.Errorf("err = %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGroq("k", "", srv.URL, srv.Client()).Complete(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("groq err = %v", err)
	}
	if _, err := (Mock{}).Complete(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("mock err = %v", err)
	}
}

func TestMockEchoesPromptHead(t *testing.T) {
	prompt := strings.Repeat("a", 50) + "TAIL"
	got, err := Mock{}.Complete(context.Background(), prompt)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "[Mock AI Response]") {
		t.Errorf("mock = %q", got)
	}
	if !strings.Contains(got, strings.Repeat("a", 50)+"...") || strings.Contains(got, "TAIL") {
		t.Errorf("mock should quote exactly 50 characters: %q", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n[{\"a\":1}]\n```": `[{"a":1}]`,
		"```\n[]\n```":              `[]`,
		"  [1,2]  ":                 `[1,2]`,
		"```JSON\n{}```":            `{}`,
	}
	for in, want := range tests {
		if got := StripFences(in); got != want {
			t.Errorf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

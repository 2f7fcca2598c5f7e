// Package ai sends prompts to a text-completion provider. Groq is used when
// a Groq key is configured, then Gemini; with neither, a mock answers so
// the rest of the app stays usable offline.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Shared generation settings
const (
	Temperature = 0.7
	MaxTokens   = 2048
)

// Completer turns a prompt into generated text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config selects and configures providers. Empty URLs and models use the
// public defaults.
type Config struct {
	GroqAPIKey   string
	GroqModel    string
	GroqURL      string
	GeminiAPIKey string
	GeminiModel  string
	GeminiURL    string
	HTTPClient   *http.Client
}

// Select returns the active provider: Groq, then Gemini, then Mock
func Select(cfg Config) Completer {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	switch {
	case strings.TrimSpace(cfg.GroqAPIKey) != "":
		return NewGroq(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqURL, client)
	case strings.TrimSpace(cfg.GeminiAPIKey) != "":
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiURL, client)
	default:
		return Mock{}
	}
}

// ProviderError is a non-success answer from a provider
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// Mock answers without a network call, quoting the start of the prompt
type Mock struct{}

func (Mock) Name() string { return "mock" }

func (Mock) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	head := []rune(prompt)
	if len(head) > 50 {
		head = head[:50]
	}
	return "[Mock AI Response]\n\n" +
		"Since no API keys are configured, this is a mock generated response. \n\n" +
		"Here is what I would have generated based on your prompt: \n" +
		"\"" + string(head) + "...\"\n\n" +
		"Set GROQ_API_KEY or GEMINI_API_KEY to get real answers.", nil
}

// IsMock reports whether c is the offline mock
func IsMock(c Completer) bool {
	_, ok := c.(Mock)
	return ok
}

// StripFences removes a surrounding ```json ... ``` markdown block
func StripFences(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```JSON")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

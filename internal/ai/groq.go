package ai

import (
	"context"
	"net/http"
)

const (
	DefaultGroqURL   = "https://api.groq.com/openai/v1/chat/completions"
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

// Groq talks to the OpenAI-compatible chat completions endpoint
type Groq struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

func NewGroq(apiKey, model, url string, client *http.Client) *Groq {
	if model == "" {
		model = DefaultGroqModel
	}
	if url == "" {
		url = DefaultGroqURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Groq{apiKey: apiKey, model: model, url: url, client: client}
}

func (g *Groq) Name() string { return "Groq" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete returns the first choice's content, or "" when there is none
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	var resp chatResponse
	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}
	if err := postJSON(ctx, g.client, g.Name(), g.url, headers, reqBody, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

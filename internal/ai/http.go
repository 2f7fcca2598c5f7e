package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appLog "github.com/balkashynov/jess/internal/log"
)

// errorBody is the error envelope both providers use
type errorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// postJSON sends body to url and decodes a 200 answer into out. Other
// statuses become a *ProviderError carrying the provider's message.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	appLog.Debug("ai request", "provider", provider, "bytes", len(jsonBody))

	resp, err := client.Do(req)
	if err != nil {
		appLog.Error("ai request failed", err, "provider", provider)
		return fmt.Errorf("%s request: %w", provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		perr := &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Message: provider + " API error"}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error != nil && eb.Error.Message != "" {
			perr.Message = eb.Error.Message
		}
		appLog.Error("ai provider error", perr, "provider", provider, "status", resp.StatusCode)
		return perr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

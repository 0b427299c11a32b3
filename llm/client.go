// Package llm is a thin, stateless gateway to an OpenRouter-compatible
// chat-completion endpoint.
//
// Design decisions:
//   - Invoker is an interface so the chat pipeline can be tested with a
//     mock gateway, and so backends can be swapped without touching
//     pipeline code.
//   - One request, one response. No streaming, no internal retries —
//     the SQL correction loop in package chat owns all retry policy.
//   - Every failure is mapped to a typed *Error so callers can branch
//     on kind instead of parsing error strings.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Invoker is the interface the pipeline depends on.
type Invoker interface {
	// Invoke sends a single prompt (with an optional system prompt)
	// and returns the model's reply.
	Invoke(ctx context.Context, prompt, systemPrompt string) (string, error)

	// Chat sends a full message list and returns the reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ModelID returns the model identifier for display and logging.
	ModelID() string
}

// Client calls the completion endpoint over HTTP.
type Client struct {
	apiURL      string
	apiKey      string
	modelID     string
	temperature float64
	httpClient  *http.Client
}

var _ Invoker = (*Client)(nil)

// NewClient creates a gateway client for one model.
func NewClient(apiURL, apiKey, modelID string, temperature float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL:      apiURL,
		apiKey:      apiKey,
		modelID:     modelID,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) ModelID() string { return c.modelID }

// Invoke wraps Chat for the common prompt + system prompt case.
func (c *Client) Invoke(ctx context.Context, prompt, systemPrompt string) (string, error) {
	var messages []Message
	if systemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})
	return c.Chat(ctx, messages)
}

// Chat sends the message list and returns choices[0].message.content.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body := map[string]interface{}{
		"model":       c.modelID,
		"messages":    messages,
		"temperature": c.temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", newError(KindMalformed, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", newError(KindConnection, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logRequest(c.modelID, messages)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var gwErr *Error
		if isTimeout(err) {
			gwErr = newError(KindTimeout, "request timed out", err)
		} else {
			gwErr = newError(KindConnection, "request failed", err)
		}
		logResponse(c.modelID, "", gwErr)
		return "", gwErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		gwErr := newError(KindConnection, "read response", err)
		logResponse(c.modelID, "", gwErr)
		return "", gwErr
	}

	if resp.StatusCode != http.StatusOK {
		gwErr := newHTTPError(resp.StatusCode, truncate(string(respBody), 500))
		logResponse(c.modelID, "", gwErr)
		return "", gwErr
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		gwErr := newError(KindMalformed, "parse response", err)
		logResponse(c.modelID, "", gwErr)
		return "", gwErr
	}

	if len(result.Choices) == 0 {
		gwErr := newError(KindMalformed, "response has no choices", nil)
		logResponse(c.modelID, "", gwErr)
		return "", gwErr
	}

	content := result.Choices[0].Message.Content
	logResponse(c.modelID, content, nil)
	return content, nil
}

// isTimeout distinguishes deadline expiry from other transport failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// UserMessage extracts the user-facing template from any error that came
// out of this package; other errors get a generic wrapper.
func UserMessage(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.UserMessage()
	}
	return fmt.Sprintf("Unexpected error occurred: %v", err)
}

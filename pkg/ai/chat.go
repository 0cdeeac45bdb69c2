package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no API credential is present. Callers of
// advisory features short-circuit to their fallback values on this error
// without attempting a network call.
var ErrNotConfigured = errors.New("ai: API key not configured")

// ChatMessage is a single role-tagged message in a completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient calls an OpenAI-compatible chat completions endpoint (OpenRouter)
// with a bearer credential. The first returned candidate is used.
type ChatClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

const defaultChatBaseURL = "https://openrouter.ai/api/v1"

func NewChatClient(apiKey, model string) *ChatClient {
	return &ChatClient{
		baseURL: defaultChatBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the endpoint, used in tests.
func (c *ChatClient) WithBaseURL(baseURL string) *ChatClient {
	c.baseURL = baseURL
	return c
}

// IsConfigured reports whether a credential is present.
func (c *ChatClient) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the message sequence and returns the first candidate's text.
func (c *ChatClient) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: chat completion failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: malformed completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("ai: completion returned no candidates")
	}
	return parsed.Choices[0].Message.Content, nil
}

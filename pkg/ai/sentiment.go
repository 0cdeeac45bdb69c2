package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SentimentClient calls a Hugging Face style sentence-classification endpoint.
// The response is a list of label/score pairs; the highest-scoring label is
// selected and normalized (LABEL_ prefix stripped, lowercased).
type SentimentClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

const defaultInferenceBaseURL = "https://api-inference.huggingface.co/models"

func NewSentimentClient(apiKey, model string) *SentimentClient {
	return &SentimentClient{
		baseURL: defaultInferenceBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the endpoint, used in tests.
func (c *SentimentClient) WithBaseURL(baseURL string) *SentimentClient {
	c.baseURL = baseURL
	return c
}

// IsConfigured reports whether a credential is present.
func (c *SentimentClient) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type sentimentLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze classifies the text and returns the normalized top label.
func (c *SentimentClient) Analyze(ctx context.Context, text string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
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
		return "", fmt.Errorf("ai: sentiment analysis failed with status %d", resp.StatusCode)
	}

	// The inference API nests the label list one level deep
	var parsed [][]sentimentLabel
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: malformed sentiment response: %w", err)
	}
	if len(parsed) == 0 || len(parsed[0]) == 0 {
		return "", fmt.Errorf("ai: sentiment response contained no labels")
	}

	best := parsed[0][0]
	for _, candidate := range parsed[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return NormalizeSentimentLabel(best.Label), nil
}

// NormalizeSentimentLabel strips the model's LABEL_ prefix and lowercases.
func NormalizeSentimentLabel(label string) string {
	return strings.ToLower(strings.TrimPrefix(label, "LABEL_"))
}

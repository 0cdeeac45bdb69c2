package ai_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"placewell-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
)

func sentimentServer(t *testing.T, body string, status int) *ai.SentimentClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return ai.NewSentimentClient("test-key", "test-model").WithBaseURL(srv.URL)
}

func TestSentimentAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Highest scoring label wins", func(t *testing.T) {
		client := sentimentServer(t, `[[{"label":"negative","score":0.2},{"label":"positive","score":0.7},{"label":"neutral","score":0.1}]]`, http.StatusOK)
		label, err := client.Analyze(ctx, "feeling good about the interview")
		assert.NoError(t, err)
		assert.Equal(t, "positive", label)
	})

	t.Run("LABEL_ prefixed labels are normalized", func(t *testing.T) {
		client := sentimentServer(t, `[[{"label":"LABEL_2","score":0.9},{"label":"LABEL_0","score":0.1}]]`, http.StatusOK)
		label, err := client.Analyze(ctx, "great day")
		assert.NoError(t, err)
		assert.Equal(t, "2", label)
	})

	t.Run("Missing credential short-circuits", func(t *testing.T) {
		client := ai.NewSentimentClient("", "test-model")
		_, err := client.Analyze(ctx, "anything")
		assert.ErrorIs(t, err, ai.ErrNotConfigured)
	})

	t.Run("Non-200 is an error", func(t *testing.T) {
		client := sentimentServer(t, `{"error":"model loading"}`, http.StatusServiceUnavailable)
		_, err := client.Analyze(ctx, "anything")
		assert.Error(t, err)
	})

	t.Run("Empty label list is an error", func(t *testing.T) {
		client := sentimentServer(t, `[[]]`, http.StatusOK)
		_, err := client.Analyze(ctx, "anything")
		assert.Error(t, err)
	})
}

func TestNormalizeSentimentLabel(t *testing.T) {
	assert.Equal(t, "positive", ai.NormalizeSentimentLabel("POSITIVE"))
	assert.Equal(t, "1", ai.NormalizeSentimentLabel("LABEL_1"))
	assert.Equal(t, "neutral", ai.NormalizeSentimentLabel("neutral"))
}

package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/ai"
	"placewell-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

const unavailableReason = "Match analysis is unavailable right now. Review the job requirements against your profile manually."

func testStudent() *domain.StudentProfile {
	return &domain.StudentProfile{
		CollegeName:    "Test College",
		Degree:         "B.Tech",
		GraduationYear: 2026,
		GPA:            8.2,
		Skills:         []string{"go", "sql"},
	}
}

func testJob() *domain.JobPosting {
	return &domain.JobPosting{
		Title:          "Backend Engineer",
		Description:    "Build APIs",
		RequiredSkills: []string{"go"},
	}
}

// chatServer returns a chat client pointed at a stub completions endpoint
// that replies with the given message content.
func chatServer(t *testing.T, content string) *ai.ChatClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
	}))
	t.Cleanup(srv.Close)
	return ai.NewChatClient("test-key", "test-model").WithBaseURL(srv.URL)
}

func TestAnalyzeMatch(t *testing.T) {
	logger.Init()

	t.Run("Unconfigured client returns fallback", func(t *testing.T) {
		advisor := usecase.NewMatchAdvisor(ai.NewChatClient("", "test-model"))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 50, result.Score)
		assert.Equal(t, []string{unavailableReason}, result.Reasons)
	})

	t.Run("Valid response is parsed", func(t *testing.T) {
		advisor := usecase.NewMatchAdvisor(chatServer(t, `{"score": 82, "reasons": ["Strong skill overlap", "Relevant degree"]}`))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 82, result.Score)
		assert.Equal(t, []string{"Strong skill overlap", "Relevant degree"}, result.Reasons)
	})

	t.Run("Code-fenced response is accepted", func(t *testing.T) {
		advisor := usecase.NewMatchAdvisor(chatServer(t, "```json\n{\"score\": 61, \"reasons\": [\"Partial match\"]}\n```"))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 61, result.Score)
	})

	t.Run("Malformed body resolves to fallback", func(t *testing.T) {
		advisor := usecase.NewMatchAdvisor(chatServer(t, "sorry, I cannot evaluate this match"))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 50, result.Score)
		assert.Equal(t, []string{unavailableReason}, result.Reasons)
	})

	t.Run("Out-of-range score is clamped and reasons capped at four", func(t *testing.T) {
		advisor := usecase.NewMatchAdvisor(chatServer(t, `{"score": 250, "reasons": ["a","b","c","d","e","f"]}`))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 100, result.Score)
		assert.Len(t, result.Reasons, 4)
	})

	t.Run("Transport failure resolves to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)
		advisor := usecase.NewMatchAdvisor(ai.NewChatClient("test-key", "test-model").WithBaseURL(srv.URL))
		result := advisor.AnalyzeMatch(context.Background(), testStudent(), testJob())
		assert.Equal(t, 50, result.Score)
	})
}

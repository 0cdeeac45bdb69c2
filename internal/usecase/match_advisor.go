package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/ai"
	"placewell-backend/pkg/logger"
)

// MatchResult is the advisory outcome of scoring a student against a job.
type MatchResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// MatchAdvisor scores a student profile against a job posting using an
// external text-generation call. The feature is advisory: it never returns an
// error, every failure degrades to the neutral fallback.
type MatchAdvisor interface {
	AnalyzeMatch(ctx context.Context, student *domain.StudentProfile, job *domain.JobPosting) MatchResult
}

// completionClient is the slice of ai.ChatClient the advisor needs. Kept
// minimal so tests can substitute a stub.
type completionClient interface {
	IsConfigured() bool
	Complete(ctx context.Context, messages []ai.ChatMessage, maxTokens int, temperature float64) (string, error)
}

type matchAdvisor struct {
	chat completionClient
}

func NewMatchAdvisor(chat *ai.ChatClient) MatchAdvisor {
	return &matchAdvisor{chat: chat}
}

const fallbackReason = "Match analysis is unavailable right now. Review the job requirements against your profile manually."

func fallbackResult() MatchResult {
	return MatchResult{Score: 50, Reasons: []string{fallbackReason}}
}

const matchSystemPrompt = `You are a placement assistant that evaluates how well a student profile matches a job posting.
Respond with a single JSON object of the form {"score": <integer 0-100>, "reasons": [<up to 4 short strings>]}.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`

// AnalyzeMatch delegates to the text-generation endpoint and parses the JSON
// it demands back. Missing credential, transport failure, malformed JSON and
// out-of-range values all resolve to the safe default.
func (a *matchAdvisor) AnalyzeMatch(ctx context.Context, student *domain.StudentProfile, job *domain.JobPosting) MatchResult {
	if a.chat == nil || !a.chat.IsConfigured() {
		return fallbackResult()
	}

	messages := []ai.ChatMessage{
		{Role: "system", Content: matchSystemPrompt},
		{Role: "user", Content: buildMatchPrompt(student, job)},
	}

	raw, err := a.chat.Complete(ctx, messages, 512, 0.3)
	if err != nil {
		logger.Log.Warn("Match analysis call failed, using fallback", "error", err)
		return fallbackResult()
	}

	var parsed struct {
		Score   int             `json:"score"`
		Reasons json.RawMessage `json:"reasons"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		logger.Log.Warn("Match analysis returned malformed JSON, using fallback", "error", err)
		return fallbackResult()
	}

	result := MatchResult{Score: clampScore(parsed.Score)}

	// Reasons must be a string array; anything else is replaced wholesale
	var reasons []string
	if err := json.Unmarshal(parsed.Reasons, &reasons); err != nil || len(reasons) == 0 {
		reasons = []string{fallbackReason}
	}
	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	result.Reasons = reasons
	return result
}

func buildMatchPrompt(student *domain.StudentProfile, job *domain.JobPosting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Student profile:\n")
	fmt.Fprintf(&sb, "- College: %s\n", student.CollegeName)
	fmt.Fprintf(&sb, "- Degree: %s (graduating %d)\n", student.Degree, student.GraduationYear)
	fmt.Fprintf(&sb, "- GPA: %.2f\n", student.GPA)
	fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(student.Skills, ", "))
	fmt.Fprintf(&sb, "- Certifications: %s\n", strings.Join(student.Certifications, ", "))
	fmt.Fprintf(&sb, "- Experience level: %s\n", student.ExperienceLevel)
	fmt.Fprintf(&sb, "\nJob posting:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", job.Title)
	fmt.Fprintf(&sb, "- Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	fmt.Fprintf(&sb, "- Description: %s\n", job.Description)
	return sb.String()
}

// stripCodeFences removes a surrounding markdown code block if the model
// wrapped its JSON despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

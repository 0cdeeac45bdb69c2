package usecase_test

import (
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func repeatLogs(mood, stress, energy, n int) []domain.MoodLog {
	logs := make([]domain.MoodLog, n)
	for i := range logs {
		logs[i] = domain.MoodLog{MoodScore: mood, StressLevel: stress, EnergyLevel: energy}
	}
	return logs
}

func TestCalculateResilienceScore(t *testing.T) {
	t.Run("Empty history returns neutral score", func(t *testing.T) {
		assert.Equal(t, 50, usecase.CalculateResilienceScore(nil))
		assert.Equal(t, 50, usecase.CalculateResilienceScore([]domain.MoodLog{}))
	})

	t.Run("Neutral week scores exactly 50", func(t *testing.T) {
		assert.Equal(t, 50, usecase.CalculateResilienceScore(repeatLogs(5, 5, 5, 7)))
	})

	t.Run("Excellent week scores near the top", func(t *testing.T) {
		// round((10*0.4 + 9*0.3 + 10*0.3) * 10) = 97
		assert.Equal(t, 97, usecase.CalculateResilienceScore(repeatLogs(10, 1, 10, 7)))
	})

	t.Run("Worst week clamps at the bottom", func(t *testing.T) {
		// round((1*0.4 + 0*0.3 + 1*0.3) * 10) = 7
		assert.Equal(t, 7, usecase.CalculateResilienceScore(repeatLogs(1, 10, 1, 7)))
	})

	t.Run("Only the last seven entries count", func(t *testing.T) {
		logs := append(repeatLogs(1, 10, 1, 10), repeatLogs(5, 5, 5, 7)...)
		assert.Equal(t, 50, usecase.CalculateResilienceScore(logs))
	})

	t.Run("Missing fields default to 5", func(t *testing.T) {
		logs := []domain.MoodLog{{MoodScore: 5}}
		assert.Equal(t, 50, usecase.CalculateResilienceScore(logs))
	})
}

func TestGenerateWellnessRecommendations(t *testing.T) {
	t.Run("Low mood and low energy match together", func(t *testing.T) {
		recs := usecase.GenerateWellnessRecommendations(3, 2, 3)
		// 2 low-mood messages + 3 low-energy messages, no stress set
		assert.Len(t, recs, 5)
		assert.Contains(t, recs, "Reach out to a friend, mentor, or counselor and talk about how you are feeling.")
		assert.Contains(t, recs, "Aim for 7-8 hours of sleep tonight.")
		assert.NotContains(t, recs, "Try a 5-minute breathing exercise to bring your stress down.")
	})

	t.Run("High stress alone matches only the stress set", func(t *testing.T) {
		recs := usecase.GenerateWellnessRecommendations(8, 8, 8)
		assert.Len(t, recs, 3)
		assert.Contains(t, recs, "Try a 5-minute breathing exercise to bring your stress down.")
	})

	t.Run("Healthy sample gets positive reinforcement", func(t *testing.T) {
		recs := usecase.GenerateWellnessRecommendations(7, 3, 7)
		assert.Len(t, recs, 2)
		assert.Contains(t, recs, "You are doing great, keep up your current routine.")
	})

	t.Run("Boundary values do not trigger rules", func(t *testing.T) {
		// mood=4, stress=7 and energy=4 sit exactly on the thresholds
		recs := usecase.GenerateWellnessRecommendations(4, 7, 4)
		assert.Len(t, recs, 2)
	})
}

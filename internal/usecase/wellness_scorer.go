package usecase

import (
	"math"

	"placewell-backend/internal/domain"
)

// resilienceWindow is the number of most recent mood logs considered.
const resilienceWindow = 7

// neutralScore is returned when no history exists. A perfectly neutral
// (5,5,5) sample also yields it.
const neutralScore = 50

// CalculateResilienceScore derives a 0-100 resilience score from a mood log
// window, newest last. Only the last resilienceWindow entries count; missing
// (zero) fields default to 5. The formula rewards high mood and energy and
// penalizes high stress:
//
//	round((avgMood*0.4 + (10-avgStress)*0.3 + avgEnergy*0.3) * 10)
//
// clamped to [0,100].
func CalculateResilienceScore(logs []domain.MoodLog) int {
	if len(logs) == 0 {
		return neutralScore
	}
	if len(logs) > resilienceWindow {
		logs = logs[len(logs)-resilienceWindow:]
	}

	var moodSum, stressSum, energySum float64
	for _, log := range logs {
		moodSum += defaultScore(log.MoodScore)
		stressSum += defaultScore(log.StressLevel)
		energySum += defaultScore(log.EnergyLevel)
	}

	n := float64(len(logs))
	avgMood := moodSum / n
	avgStress := stressSum / n
	avgEnergy := energySum / n

	score := int(math.Round((avgMood*0.4 + (10-avgStress)*0.3 + avgEnergy*0.3) * 10))
	return clampScore(score)
}

func defaultScore(v int) float64 {
	if v == 0 {
		return 5
	}
	return float64(v)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// recommendationRule pairs a predicate over the latest (mood, stress, energy)
// sample with the messages it contributes. Rules are evaluated independently;
// every matching rule appends its messages.
type recommendationRule struct {
	matches  func(mood, stress, energy int) bool
	messages []string
}

var recommendationRules = []recommendationRule{
	{
		matches: func(mood, _, _ int) bool { return mood < 4 },
		messages: []string{
			"Reach out to a friend, mentor, or counselor and talk about how you are feeling.",
			"Take a short break from placement prep and do one small activity you enjoy.",
		},
	},
	{
		matches: func(_, stress, _ int) bool { return stress > 7 },
		messages: []string{
			"Try a 5-minute breathing exercise to bring your stress down.",
			"Break your preparation into smaller tasks and tackle one at a time.",
			"Step away from screens for a while and take a short walk.",
		},
	},
	{
		matches: func(_, _, energy int) bool { return energy < 4 },
		messages: []string{
			"Aim for 7-8 hours of sleep tonight.",
			"Have a balanced meal and stay hydrated through the day.",
			"Fit in some light exercise, even a 10-minute stretch helps.",
		},
	},
}

var positiveReinforcementMessages = []string{
	"You are doing great, keep up your current routine.",
	"Your balance looks healthy. Stay consistent and check in again tomorrow.",
}

// GenerateWellnessRecommendations evaluates the rule set against the given
// scores. All matching rules contribute; if none match, positive
// reinforcement messages are returned instead.
func GenerateWellnessRecommendations(mood, stress, energy int) []string {
	var recommendations []string
	for _, rule := range recommendationRules {
		if rule.matches(mood, stress, energy) {
			recommendations = append(recommendations, rule.messages...)
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, positiveReinforcementMessages...)
	}
	return recommendations
}

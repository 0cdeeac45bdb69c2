package domain

import (
	"context"
	"time"
)

// MoodLog is an immutable append-only record per student. Scores are 1-10
// integers; a record is never updated after creation.
type MoodLog struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id" validate:"required"`
	MoodScore   int       `json:"mood_score" validate:"required,min=1,max=10"`
	StressLevel int       `json:"stress_level" validate:"required,min=1,max=10"`
	EnergyLevel int       `json:"energy_level" validate:"required,min=1,max=10"`
	FocusLevel  int       `json:"focus_level" validate:"omitempty,min=1,max=10"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Factors     []string  `json:"factors,omitempty"`
	Sentiment   *string   `json:"sentiment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MoodLogRepository is append-only: no update or delete operations exist.
type MoodLogRepository interface {
	Create(ctx context.Context, log *MoodLog) error
	// GetRecentByStudent returns up to limit logs, newest last.
	GetRecentByStudent(ctx context.Context, studentID string, limit int) ([]MoodLog, error)
}

// WellnessUsecase defines business logic for mood logging, resilience scoring
// and wellness alerts.
type WellnessUsecase interface {
	LogMood(ctx context.Context, profileID string, log *MoodLog) (*MoodLog, error)
	ListMoodLogs(ctx context.Context, profileID string, limit int) ([]MoodLog, error)
	GetResilienceScore(ctx context.Context, profileID string) (int, error)
	GetRecommendations(ctx context.Context, profileID string) ([]string, error)
	ListAlerts(ctx context.Context, profileID string, includeResolved bool) ([]WellnessAlert, error)
	ResolveAlert(ctx context.Context, resolverID string, alertID string, notes string) error
}

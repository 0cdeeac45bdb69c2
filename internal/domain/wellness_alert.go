package domain

import (
	"context"
	"time"
)

// Alert type constants
const (
	AlertTypeLowMood        = "low_mood"
	AlertTypeHighStress     = "high_stress"
	AlertTypeDecliningTrend = "declining_trend"
	AlertTypeNoActivity     = "no_activity"
)

// Alert severity constants
const (
	AlertSeverityLow      = "low"
	AlertSeverityMedium   = "medium"
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

// WellnessAlert flags a concerning pattern in a student's mood history.
// Lifecycle: triggered → (optionally) resolved.
type WellnessAlert struct {
	ID              string     `json:"id"`
	StudentID       string     `json:"student_id"`
	AlertType       string     `json:"alert_type"`
	Severity        string     `json:"severity"`
	Message         string     `json:"message"`
	Resolved        bool       `json:"resolved"`
	ResolvedBy      *string    `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolutionNotes *string    `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type WellnessAlertRepository interface {
	Create(ctx context.Context, alert *WellnessAlert) error
	GetByID(ctx context.Context, id string) (*WellnessAlert, error)
	GetByStudentID(ctx context.Context, studentID string, includeResolved bool) ([]WellnessAlert, error)
	// HasUnresolved reports whether an open alert of the given type exists.
	HasUnresolved(ctx context.Context, studentID string, alertType string) (bool, error)
	Resolve(ctx context.Context, id string, resolvedBy string, notes string) error
}

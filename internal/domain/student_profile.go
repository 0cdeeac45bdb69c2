package domain

import (
	"context"
	"time"
)

// Experience level constants
const (
	ExperienceLevelEntry  = "entry"
	ExperienceLevelMid    = "mid"
	ExperienceLevelSenior = "senior"
)

// Placement status constants
const (
	PlacementStatusSeeking = "seeking"
	PlacementStatusPlaced  = "placed"
	PlacementStatusOnHold  = "on_hold"
)

// StudentProfile extends a Profile of role=student with academic and
// preference attributes. One-to-one with the base profile.
type StudentProfile struct {
	ID                string         `json:"id"`
	ProfileID         string         `json:"profile_id" validate:"required"`
	CollegeName       string         `json:"college_name" validate:"required,max=150"`
	Degree            string         `json:"degree" validate:"max=100"`
	GraduationYear    int            `json:"graduation_year" validate:"omitempty,min=1950"`
	GPA               float64        `json:"gpa" validate:"min=0,max=10"`
	Skills            []string       `json:"skills"`
	Certifications    []string       `json:"certifications"`
	Languages         []string       `json:"languages"`
	ExpectedSalaryMin float64        `json:"expected_salary_min" validate:"min=0"`
	ExpectedSalaryMax float64        `json:"expected_salary_max" validate:"min=0"`
	ExperienceLevel   string         `json:"experience_level"`
	PlacementStatus   string         `json:"placement_status"`
	Preferences       map[string]any `json:"preferences,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type StudentProfileRepository interface {
	Create(ctx context.Context, profile *StudentProfile) error
	GetByProfileID(ctx context.Context, profileID string) (*StudentProfile, error)
	Update(ctx context.Context, profile *StudentProfile) error
}

// StudentProfileUsecase defines business logic for student profiles
type StudentProfileUsecase interface {
	GetStudentProfile(ctx context.Context, profileID string) (*StudentProfile, error)
	UpdateStudentProfile(ctx context.Context, profileID string, profile *StudentProfile) error
}

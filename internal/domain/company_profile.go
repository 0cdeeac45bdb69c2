package domain

import (
	"context"
	"time"
)

// VerificationStatus constants. Initialized to pending at sign-up and advanced
// only by an admin actor.
const (
	VerificationStatusPending  = "pending"
	VerificationStatusVerified = "verified"
	VerificationStatusRejected = "rejected"
)

// ValidVerificationStatuses for validation
var ValidVerificationStatuses = []string{VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected}

// CompanyProfile extends a Profile of role=company with organization
// attributes. One-to-one with the base profile.
type CompanyProfile struct {
	ID                 string    `json:"id"`
	ProfileID          string    `json:"profile_id" validate:"required"`
	CompanyName        string    `json:"company_name" validate:"required,max=150"`
	Industry           *string   `json:"industry,omitempty"`
	Website            *string   `json:"website,omitempty" validate:"omitempty,url"`
	Description        *string   `json:"description,omitempty"`
	CompanySize        *string   `json:"company_size,omitempty"`
	Headquarters       *string   `json:"headquarters,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CompanyProfileRepository interface {
	Create(ctx context.Context, profile *CompanyProfile) error
	GetByProfileID(ctx context.Context, profileID string) (*CompanyProfile, error)
	Update(ctx context.Context, profile *CompanyProfile) error
	UpdateVerificationStatus(ctx context.Context, id string, status string) error
}

// CompanyProfileUsecase defines business logic for company profiles
type CompanyProfileUsecase interface {
	GetCompanyProfile(ctx context.Context, profileID string) (*CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, profileID string, profile *CompanyProfile) error
	// Admin operation: advance the verification lifecycle
	SetVerificationStatus(ctx context.Context, companyID string, status string) error
}

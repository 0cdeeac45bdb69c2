package domain

import (
	"context"
	"time"
)

// Role constants
const (
	RoleStudent = "student"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// ValidRoles for validation
var ValidRoles = []string{RoleStudent, RoleCompany, RoleAdmin}

// Profile is the root identity record. ID is immutable once created and the
// role is set at sign-up and not expected to change afterwards.
type Profile struct {
	ID        string    `json:"id"` // Supabase UUID
	Email     string    `json:"email" validate:"required,email"`
	FullName  string    `json:"full_name" validate:"required,valid_name,max=100"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	AvatarURL *string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate carries the partial fields of an update. Nil fields are left
// untouched by the store; supplied fields are merged into the existing record.
type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ProfileRepository is the ProfileStore contract. Implementations exist for
// Postgres (live) and an in-memory map (mock); both honor identical semantics:
// Create assigns a generated id when none is supplied and stamps timestamps,
// Get on a missing id returns ErrNotFound rather than a nil record with no
// error, Update merges partial fields and refreshes updated_at.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, id string, fields ProfileUpdate) (*Profile, error)
}

// ProfileUsecase defines business logic for base profiles
type ProfileUsecase interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	UpdateProfile(ctx context.Context, id string, fields ProfileUpdate) (*Profile, error)
}

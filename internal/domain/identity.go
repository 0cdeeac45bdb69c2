package domain

import (
	"context"
	"time"
)

// AuthUser is the identity record held by the session provider.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession carries the provider-issued tokens for a signed-in user.
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         AuthUser  `json:"user"`
}

// IdentityProvider is the identity/session provider boundary (Supabase GoTrue
// in live mode, an in-memory mock otherwise).
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*AuthUser, *AuthSession, error)
	SignInWithPassword(ctx context.Context, email, password string) (*AuthUser, *AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*AuthUser, error)
}

// SignUpInput is the role-tagged registration payload.
type SignUpInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,valid_name,max=100"`
	Role        string `json:"role" validate:"required,oneof=student company admin"`
	Phone       string `json:"phone" validate:"omitempty,valid_phone"`
	CollegeName string `json:"college_name"` // role=student: triggers student profile creation
	CompanyName string `json:"company_name"` // role=company: triggers company profile creation
}

// AuthResult pairs the identity user with its session and local profile.
type AuthResult struct {
	User    *AuthUser    `json:"user"`
	Session *AuthSession `json:"session,omitempty"`
	Profile *Profile     `json:"profile,omitempty"`
}

// AuthState describes a session transition delivered to subscribers.
type AuthState struct {
	Event   string       `json:"event"` // signed_in | signed_out
	Session *AuthSession `json:"session,omitempty"`
}

// AuthGateway wraps sign-up/sign-in/sign-out and session-change notification,
// coordinating identity creation with role-specific profile creation.
type AuthGateway interface {
	SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context, accessToken string) error
	GetCurrentUser(ctx context.Context, id string) (*Profile, error)
	OnAuthStateChange(fn func(AuthState)) *AuthSubscription
}

// AuthSubscription is the unsubscribe handle returned by OnAuthStateChange.
// Unsubscribe is idempotent: calling it on an already-torn-down listener is a
// no-op.
type AuthSubscription struct {
	unsubscribe func()
}

func NewAuthSubscription(unsubscribe func()) *AuthSubscription {
	return &AuthSubscription{unsubscribe: unsubscribe}
}

func (s *AuthSubscription) Unsubscribe() {
	if s == nil || s.unsubscribe == nil {
		return
	}
	fn := s.unsubscribe
	s.unsubscribe = nil
	fn()
}

package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

var errInvalidCredentials = errors.New("invalid email or password")

type mockUser struct {
	id       string
	email    string
	password string
}

// MockProvider is an in-memory stand-in for the hosted identity service,
// selected when Supabase is not configured. Sessions are opaque uuid tokens
// kept in a map; the contract matches SupabaseProvider exactly.
type MockProvider struct {
	mu       sync.RWMutex
	users    map[string]*mockUser // keyed by lowercased email
	sessions map[string]string    // access token -> user id
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		users:    make(map[string]*mockUser),
		sessions: make(map[string]string),
	}
}

func (p *MockProvider) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.AuthUser, *domain.AuthSession, error) {
	key := strings.ToLower(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[key]; exists {
		return nil, nil, domain.ErrAlreadyExists
	}

	user := &mockUser{
		id:       uuid.NewString(),
		email:    email,
		password: password,
	}
	p.users[key] = user

	session := p.newSessionLocked(user)
	return &domain.AuthUser{ID: user.id, Email: user.email}, session, nil
}

func (p *MockProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthUser, *domain.AuthSession, error) {
	key := strings.ToLower(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	user, exists := p.users[key]
	if !exists || user.password != password {
		return nil, nil, errInvalidCredentials
	}

	session := p.newSessionLocked(user)
	return &domain.AuthUser{ID: user.id, Email: user.email}, session, nil
}

func (p *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, accessToken)
	return nil
}

func (p *MockProvider) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	userID, exists := p.sessions[accessToken]
	if !exists {
		return nil, domain.ErrNotFound
	}
	for _, u := range p.users {
		if u.id == userID {
			return &domain.AuthUser{ID: u.id, Email: u.email}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *MockProvider) newSessionLocked(user *mockUser) *domain.AuthSession {
	token := uuid.NewString()
	p.sessions[token] = user.id
	return &domain.AuthSession{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         domain.AuthUser{ID: user.id, Email: user.email},
	}
}

package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

type profileRepo struct {
	mu       sync.RWMutex
	records  map[string]domain.Profile
	emailIdx map[string]string // lowercased email -> id
}

// NewProfileRepository returns the in-memory ProfileStore backend, selected at
// boot when no live connection string is configured.
func NewProfileRepository() domain.ProfileRepository {
	return &profileRepo{
		records:  make(map[string]domain.Profile),
		emailIdx: make(map[string]string),
	}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	emailKey := strings.ToLower(profile.Email)

	if _, exists := r.records[profile.ID]; exists {
		return domain.ErrAlreadyExists
	}
	if _, exists := r.emailIdx[emailKey]; exists {
		return domain.ErrAlreadyExists
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	r.records[profile.ID] = *profile
	r.emailIdx[emailKey] = profile.ID
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	// Return a copy so callers cannot alias the stored record
	return &record, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.emailIdx[strings.ToLower(email)]
	if !exists {
		return nil, domain.ErrNotFound
	}
	record := r.records[id]
	return &record, nil
}

func (r *profileRepo) Update(ctx context.Context, id string, fields domain.ProfileUpdate) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	if fields.FullName != nil {
		record.FullName = *fields.FullName
	}
	if fields.Phone != nil {
		record.Phone = fields.Phone
	}
	if fields.AvatarURL != nil {
		record.AvatarURL = fields.AvatarURL
	}
	record.UpdatedAt = time.Now()

	r.records[id] = record
	return &record, nil
}

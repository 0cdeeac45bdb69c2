package memory

import (
	"context"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

type studentProfileRepo struct {
	mu      sync.RWMutex
	records map[string]domain.StudentProfile // keyed by profile id (one-to-one)
}

func NewStudentProfileRepository() domain.StudentProfileRepository {
	return &studentProfileRepo{records: make(map[string]domain.StudentProfile)}
}

func (r *studentProfileRepo) Create(ctx context.Context, profile *domain.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[profile.ProfileID]; exists {
		return domain.ErrAlreadyExists
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	r.records[profile.ProfileID] = *profile
	return nil
}

func (r *studentProfileRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[profileID]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *studentProfileRepo) Update(ctx context.Context, profile *domain.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[profile.ProfileID]
	if !exists {
		return domain.ErrNotFound
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()

	r.records[profile.ProfileID] = *profile
	return nil
}

type companyProfileRepo struct {
	mu      sync.RWMutex
	records map[string]domain.CompanyProfile // keyed by profile id (one-to-one)
	idIdx   map[string]string                // company id -> profile id
}

func NewCompanyProfileRepository() domain.CompanyProfileRepository {
	return &companyProfileRepo{
		records: make(map[string]domain.CompanyProfile),
		idIdx:   make(map[string]string),
	}
}

func (r *companyProfileRepo) Create(ctx context.Context, profile *domain.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[profile.ProfileID]; exists {
		return domain.ErrAlreadyExists
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.VerificationStatus == "" {
		profile.VerificationStatus = domain.VerificationStatusPending
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	r.records[profile.ProfileID] = *profile
	r.idIdx[profile.ID] = profile.ProfileID
	return nil
}

func (r *companyProfileRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.CompanyProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[profileID]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *companyProfileRepo) Update(ctx context.Context, profile *domain.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[profile.ProfileID]
	if !exists {
		return domain.ErrNotFound
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	// Verification status is advanced only through UpdateVerificationStatus
	profile.VerificationStatus = existing.VerificationStatus
	profile.UpdatedAt = time.Now()

	r.records[profile.ProfileID] = *profile
	return nil
}

func (r *companyProfileRepo) UpdateVerificationStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profileID, exists := r.idIdx[id]
	if !exists {
		return domain.ErrNotFound
	}
	record := r.records[profileID]
	record.VerificationStatus = status
	record.UpdatedAt = time.Now()
	r.records[profileID] = record
	return nil
}

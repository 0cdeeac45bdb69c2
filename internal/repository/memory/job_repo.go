package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

type jobRepo struct {
	mu      sync.RWMutex
	records map[string]domain.JobPosting
}

func NewJobRepository() domain.JobRepository {
	return &jobRepo{records: make(map[string]domain.JobPosting)}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	r.records[job.ID] = *job
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *jobRepo) FetchPublished(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	return r.fetch(func(j *domain.JobPosting) bool {
		return j.Status == domain.JobStatusPublished
	}, limit, offset)
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	return r.fetch(func(j *domain.JobPosting) bool {
		return j.CompanyID == companyID
	}, limit, offset)
}

func (r *jobRepo) fetch(match func(*domain.JobPosting) bool, limit, offset int) ([]domain.JobPosting, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.JobPosting
	for _, record := range r.records {
		record := record
		if match(&record) {
			all = append(all, record)
		}
	}
	// Newest first, matching the Postgres ORDER BY
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[job.ID]
	if !exists {
		return domain.ErrNotFound
	}
	job.CreatedAt = existing.CreatedAt
	job.ViewCount = existing.ViewCount
	job.ApplicationCount = existing.ApplicationCount
	job.FilledPositions = existing.FilledPositions
	job.UpdatedAt = time.Now()

	r.records[job.ID] = *job
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.mutate(id, func(j *domain.JobPosting) { j.Status = status })
}

func (r *jobRepo) IncrementViewCount(ctx context.Context, id string) error {
	return r.mutate(id, func(j *domain.JobPosting) { j.ViewCount++ })
}

func (r *jobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	return r.mutate(id, func(j *domain.JobPosting) { j.ApplicationCount++ })
}

func (r *jobRepo) IncrementFilledPositions(ctx context.Context, id string) error {
	return r.mutate(id, func(j *domain.JobPosting) { j.FilledPositions++ })
}

func (r *jobRepo) mutate(id string, apply func(*domain.JobPosting)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return domain.ErrNotFound
	}
	apply(&record)
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

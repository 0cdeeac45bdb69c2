package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

type applicationRepo struct {
	mu      sync.RWMutex
	records map[string]domain.Application
	pairIdx map[[2]string]string // (job id, student id) -> application id
}

func NewApplicationRepository() domain.ApplicationRepository {
	return &applicationRepo{
		records: make(map[string]domain.Application),
		pairIdx: make(map[[2]string]string),
	}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := [2]string{app.JobID, app.StudentID}
	if _, exists := r.pairIdx[pair]; exists {
		return domain.ErrAlreadyExists
	}

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	r.records[app.ID] = *app
	r.pairIdx[pair] = app.ID
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.list(func(a *domain.Application) bool { return a.JobID == jobID })
}

func (r *applicationRepo) GetByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	return r.list(func(a *domain.Application) bool { return a.StudentID == studentID })
}

func (r *applicationRepo) list(match func(*domain.Application) bool) ([]domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Application
	for _, record := range r.records {
		record := record
		if match(&record) {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID, studentID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.pairIdx[[2]string{jobID, studentID}]
	return exists, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return domain.ErrNotFound
	}
	record.Status = status
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

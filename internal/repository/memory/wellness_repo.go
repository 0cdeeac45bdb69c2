package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
)

type moodLogRepo struct {
	mu      sync.RWMutex
	records map[string][]domain.MoodLog // keyed by student id, append order
}

func NewMoodLogRepository() domain.MoodLogRepository {
	return &moodLogRepo{records: make(map[string][]domain.MoodLog)}
}

func (r *moodLogRepo) Create(ctx context.Context, log *domain.MoodLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	r.records[log.StudentID] = append(r.records[log.StudentID], *log)
	return nil
}

func (r *moodLogRepo) GetRecentByStudent(ctx context.Context, studentID string, limit int) ([]domain.MoodLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := r.records[studentID]
	if len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	// Copy: internal slice must not be aliased by callers
	result := make([]domain.MoodLog, len(logs))
	copy(result, logs)
	return result, nil
}

type wellnessAlertRepo struct {
	mu      sync.RWMutex
	records map[string]domain.WellnessAlert
}

func NewWellnessAlertRepository() domain.WellnessAlertRepository {
	return &wellnessAlertRepo{records: make(map[string]domain.WellnessAlert)}
}

func (r *wellnessAlertRepo) Create(ctx context.Context, alert *domain.WellnessAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	r.records[alert.ID] = *alert
	return nil
}

func (r *wellnessAlertRepo) GetByID(ctx context.Context, id string) (*domain.WellnessAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *wellnessAlertRepo) GetByStudentID(ctx context.Context, studentID string, includeResolved bool) ([]domain.WellnessAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.WellnessAlert
	for _, record := range r.records {
		if record.StudentID != studentID {
			continue
		}
		if record.Resolved && !includeResolved {
			continue
		}
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *wellnessAlertRepo) HasUnresolved(ctx context.Context, studentID string, alertType string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.StudentID == studentID && record.AlertType == alertType && !record.Resolved {
			return true, nil
		}
	}
	return false, nil
}

func (r *wellnessAlertRepo) Resolve(ctx context.Context, id string, resolvedBy string, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return domain.ErrNotFound
	}
	now := time.Now()
	record.Resolved = true
	record.ResolvedBy = &resolvedBy
	record.ResolvedAt = &now
	if notes != "" {
		record.ResolutionNotes = &notes
	}
	r.records[id] = record
	return nil
}

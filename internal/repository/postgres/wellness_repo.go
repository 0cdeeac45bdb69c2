package postgres

import (
	"context"
	"errors"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type moodLogRepo struct {
	db *pgxpool.Pool
}

// NewMoodLogRepository creates the append-only mood log repository.
func NewMoodLogRepository(db *pgxpool.Pool) domain.MoodLogRepository {
	return &moodLogRepo{db: db}
}

func (r *moodLogRepo) Create(ctx context.Context, log *domain.MoodLog) error {
	query := `
		INSERT INTO mood_logs (
			id, student_id, mood_score, stress_level, energy_level, focus_level,
			notes, factors, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, query,
		log.ID, log.StudentID, log.MoodScore, log.StressLevel, log.EnergyLevel,
		log.FocusLevel, log.Notes, pq.Array(log.Factors), log.Sentiment, log.CreatedAt,
	)
	return err
}

// GetRecentByStudent returns up to limit logs ordered oldest first (newest
// last), which is the window order the resilience scorer expects.
func (r *moodLogRepo) GetRecentByStudent(ctx context.Context, studentID string, limit int) ([]domain.MoodLog, error) {
	query := `
		SELECT id, student_id, mood_score, stress_level, energy_level, focus_level,
		       notes, factors, sentiment, created_at
		FROM (
			SELECT * FROM mood_logs
			WHERE student_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.MoodLog
	for rows.Next() {
		var log domain.MoodLog
		if err := rows.Scan(
			&log.ID, &log.StudentID, &log.MoodScore, &log.StressLevel, &log.EnergyLevel,
			&log.FocusLevel, &log.Notes, pq.Array(&log.Factors), &log.Sentiment, &log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

type wellnessAlertRepo struct {
	db *pgxpool.Pool
}

func NewWellnessAlertRepository(db *pgxpool.Pool) domain.WellnessAlertRepository {
	return &wellnessAlertRepo{db: db}
}

func (r *wellnessAlertRepo) Create(ctx context.Context, alert *domain.WellnessAlert) error {
	query := `
		INSERT INTO wellness_alerts (id, student_id, alert_type, severity, message, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, query,
		alert.ID, alert.StudentID, alert.AlertType, alert.Severity, alert.Message, alert.CreatedAt,
	)
	return err
}

func (r *wellnessAlertRepo) GetByID(ctx context.Context, id string) (*domain.WellnessAlert, error) {
	query := `
		SELECT id, student_id, alert_type, severity, message, resolved,
		       resolved_by, resolved_at, resolution_notes, created_at
		FROM wellness_alerts WHERE id = $1`

	var alert domain.WellnessAlert
	err := r.db.QueryRow(ctx, query, id).Scan(
		&alert.ID, &alert.StudentID, &alert.AlertType, &alert.Severity, &alert.Message,
		&alert.Resolved, &alert.ResolvedBy, &alert.ResolvedAt, &alert.ResolutionNotes, &alert.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *wellnessAlertRepo) GetByStudentID(ctx context.Context, studentID string, includeResolved bool) ([]domain.WellnessAlert, error) {
	query := `
		SELECT id, student_id, alert_type, severity, message, resolved,
		       resolved_by, resolved_at, resolution_notes, created_at
		FROM wellness_alerts
		WHERE student_id = $1 AND (resolved = false OR $2)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID, includeResolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.WellnessAlert
	for rows.Next() {
		var alert domain.WellnessAlert
		if err := rows.Scan(
			&alert.ID, &alert.StudentID, &alert.AlertType, &alert.Severity, &alert.Message,
			&alert.Resolved, &alert.ResolvedBy, &alert.ResolvedAt, &alert.ResolutionNotes, &alert.CreatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *wellnessAlertRepo) HasUnresolved(ctx context.Context, studentID string, alertType string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wellness_alerts WHERE student_id = $1 AND alert_type = $2 AND resolved = false)`
	var exists bool
	err := r.db.QueryRow(ctx, query, studentID, alertType).Scan(&exists)
	return exists, err
}

func (r *wellnessAlertRepo) Resolve(ctx context.Context, id string, resolvedBy string, notes string) error {
	query := `
		UPDATE wellness_alerts
		SET resolved = true, resolved_by = $2, resolved_at = $3, resolution_notes = NULLIF($4, '')
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, resolvedBy, time.Now(), notes)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

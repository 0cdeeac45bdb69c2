package postgres

import (
	"context"
	"errors"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique index on (job_id, student_id)
// enforces the one-application-per-student-per-job invariant.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, student_id, status, cover_letter, resume_url,
			ai_match_score, match_reasons, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.StudentID, app.Status,
		app.CoverLetter, app.ResumeURL,
		app.AIMatchScore, pq.Array(app.MatchReasons),
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID retrieves an application by ID with joined job and student data
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.student_id, a.status, a.cover_letter, a.resume_url,
			a.ai_match_score, a.match_reasons, a.created_at, a.updated_at,
			j.title as job_title, p.full_name as student_name
		FROM applications a
		LEFT JOIN job_postings j ON a.job_id = j.id
		LEFT JOIN student_profiles s ON a.student_id = s.id
		LEFT JOIN profiles p ON s.profile_id = p.id
		WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// GetByJobID retrieves all applications for a job with joined student data
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.student_id, a.status, a.cover_letter, a.resume_url,
			a.ai_match_score, a.match_reasons, a.created_at, a.updated_at,
			j.title as job_title, p.full_name as student_name
		FROM applications a
		LEFT JOIN job_postings j ON a.job_id = j.id
		LEFT JOIN student_profiles s ON a.student_id = s.id
		LEFT JOIN profiles p ON s.profile_id = p.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	return r.list(ctx, query, jobID)
}

// GetByStudentID retrieves all applications submitted by a student
func (r *applicationRepo) GetByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.student_id, a.status, a.cover_letter, a.resume_url,
			a.ai_match_score, a.match_reasons, a.created_at, a.updated_at,
			j.title as job_title, NULL as student_name
		FROM applications a
		LEFT JOIN job_postings j ON a.job_id = j.id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC`

	return r.list(ctx, query, studentID)
}

func (r *applicationRepo) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/student combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, studentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND student_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, studentID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.CoverLetter, &app.ResumeURL,
		&app.AIMatchScore, pq.Array(&app.MatchReasons), &app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.StudentName,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

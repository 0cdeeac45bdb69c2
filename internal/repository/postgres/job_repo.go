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

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			id, company_id, title, description, location, job_type,
			salary_min, salary_max, required_skills, status,
			view_count, application_count, filled_positions, total_positions,
			deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, 0, 0, $11, $12, $13, $14)`

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		job.ID, job.CompanyID, job.Title, job.Description, job.Location, job.JobType,
		job.SalaryMin, job.SalaryMax, pq.Array(job.RequiredSkills), job.Status,
		job.TotalPositions, job.Deadline, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

const jobSelectColumns = `
	j.id, j.company_id, j.title, j.description, j.location, j.job_type,
	j.salary_min, j.salary_max, j.required_skills, j.status,
	j.view_count, j.application_count, j.filled_positions, j.total_positions,
	j.deadline, j.created_at, j.updated_at, c.company_name`

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	query := `
		SELECT ` + jobSelectColumns + `
		FROM job_postings j
		LEFT JOIN company_profiles c ON j.company_id = c.id
		WHERE j.id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) FetchPublished(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	query := `
		SELECT ` + jobSelectColumns + `
		FROM job_postings j
		LEFT JOIN company_profiles c ON j.company_id = c.id
		WHERE j.status = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3`

	countQuery := `SELECT COUNT(*) FROM job_postings WHERE status = $1`

	return r.fetch(ctx, query, countQuery, domain.JobStatusPublished, limit, offset)
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	query := `
		SELECT ` + jobSelectColumns + `
		FROM job_postings j
		LEFT JOIN company_profiles c ON j.company_id = c.id
		WHERE j.company_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3`

	countQuery := `SELECT COUNT(*) FROM job_postings WHERE company_id = $1`

	return r.fetch(ctx, query, countQuery, companyID, limit, offset)
}

func (r *jobRepo) fetch(ctx context.Context, query, countQuery string, filter any, limit, offset int) ([]domain.JobPosting, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	query := `
		UPDATE job_postings SET
			title = $2, description = $3, location = $4, job_type = $5,
			salary_min = $6, salary_max = $7, required_skills = $8,
			total_positions = $9, deadline = $10, updated_at = $11
		WHERE id = $1`

	job.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.JobType,
		job.SalaryMin, job.SalaryMax, pq.Array(job.RequiredSkills),
		job.TotalPositions, job.Deadline, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.exec(ctx, `UPDATE job_postings SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
}

func (r *jobRepo) IncrementViewCount(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE job_postings SET view_count = view_count + 1 WHERE id = $1`, id)
}

func (r *jobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE job_postings SET application_count = application_count + 1 WHERE id = $1`, id)
}

func (r *jobRepo) IncrementFilledPositions(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE job_postings SET filled_positions = filled_positions + 1 WHERE id = $1`, id)
}

func (r *jobRepo) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location, &job.JobType,
		&job.SalaryMin, &job.SalaryMax, pq.Array(&job.RequiredSkills), &job.Status,
		&job.ViewCount, &job.ApplicationCount, &job.FilledPositions, &job.TotalPositions,
		&job.Deadline, &job.CreatedAt, &job.UpdatedAt, &job.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"placewell-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type studentProfileRepo struct {
	db *pgxpool.Pool
}

func NewStudentProfileRepository(db *pgxpool.Pool) domain.StudentProfileRepository {
	return &studentProfileRepo{db: db}
}

func (r *studentProfileRepo) Create(ctx context.Context, profile *domain.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (
			id, profile_id, college_name, degree, graduation_year, gpa,
			skills, certifications, languages,
			expected_salary_min, expected_salary_max,
			experience_level, placement_status, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	prefs, err := marshalPreferences(profile.Preferences)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		profile.ID, profile.ProfileID, profile.CollegeName, profile.Degree,
		profile.GraduationYear, profile.GPA,
		pq.Array(profile.Skills), pq.Array(profile.Certifications), pq.Array(profile.Languages),
		profile.ExpectedSalaryMin, profile.ExpectedSalaryMax,
		profile.ExperienceLevel, profile.PlacementStatus, prefs,
		profile.CreatedAt, profile.UpdatedAt,
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

func (r *studentProfileRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.StudentProfile, error) {
	query := `
		SELECT id, profile_id, college_name, degree, graduation_year, gpa,
		       skills, certifications, languages,
		       expected_salary_min, expected_salary_max,
		       experience_level, placement_status, preferences, created_at, updated_at
		FROM student_profiles WHERE profile_id = $1`

	var profile domain.StudentProfile
	var prefs []byte
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&profile.ID, &profile.ProfileID, &profile.CollegeName, &profile.Degree,
		&profile.GraduationYear, &profile.GPA,
		pq.Array(&profile.Skills), pq.Array(&profile.Certifications), pq.Array(&profile.Languages),
		&profile.ExpectedSalaryMin, &profile.ExpectedSalaryMax,
		&profile.ExperienceLevel, &profile.PlacementStatus, &prefs,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &profile.Preferences); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}

func (r *studentProfileRepo) Update(ctx context.Context, profile *domain.StudentProfile) error {
	query := `
		UPDATE student_profiles SET
			college_name = $2, degree = $3, graduation_year = $4, gpa = $5,
			skills = $6, certifications = $7, languages = $8,
			expected_salary_min = $9, expected_salary_max = $10,
			experience_level = $11, placement_status = $12, preferences = $13,
			updated_at = $14
		WHERE profile_id = $1`

	profile.UpdatedAt = time.Now()

	prefs, err := marshalPreferences(profile.Preferences)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, query,
		profile.ProfileID, profile.CollegeName, profile.Degree,
		profile.GraduationYear, profile.GPA,
		pq.Array(profile.Skills), pq.Array(profile.Certifications), pq.Array(profile.Languages),
		profile.ExpectedSalaryMin, profile.ExpectedSalaryMax,
		profile.ExperienceLevel, profile.PlacementStatus, prefs,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func marshalPreferences(prefs map[string]any) ([]byte, error) {
	if prefs == nil {
		return nil, nil
	}
	return json.Marshal(prefs)
}

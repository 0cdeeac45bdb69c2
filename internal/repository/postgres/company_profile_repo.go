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
)

type companyProfileRepo struct {
	db *pgxpool.Pool
}

func NewCompanyProfileRepository(db *pgxpool.Pool) domain.CompanyProfileRepository {
	return &companyProfileRepo{db: db}
}

func (r *companyProfileRepo) Create(ctx context.Context, profile *domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (
			id, profile_id, company_name, industry, website, description,
			company_size, headquarters, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.VerificationStatus == "" {
		profile.VerificationStatus = domain.VerificationStatusPending
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.ProfileID, profile.CompanyName, profile.Industry,
		profile.Website, profile.Description, profile.CompanySize, profile.Headquarters,
		profile.VerificationStatus, profile.CreatedAt, profile.UpdatedAt,
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

func (r *companyProfileRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.CompanyProfile, error) {
	query := `
		SELECT id, profile_id, company_name, industry, website, description,
		       company_size, headquarters, verification_status, created_at, updated_at
		FROM company_profiles WHERE profile_id = $1`

	var profile domain.CompanyProfile
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&profile.ID, &profile.ProfileID, &profile.CompanyName, &profile.Industry,
		&profile.Website, &profile.Description, &profile.CompanySize, &profile.Headquarters,
		&profile.VerificationStatus, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *companyProfileRepo) Update(ctx context.Context, profile *domain.CompanyProfile) error {
	// Verification status is advanced only through UpdateVerificationStatus
	query := `
		UPDATE company_profiles SET
			company_name = $2, industry = $3, website = $4, description = $5,
			company_size = $6, headquarters = $7, updated_at = $8
		WHERE profile_id = $1`

	profile.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		profile.ProfileID, profile.CompanyName, profile.Industry, profile.Website,
		profile.Description, profile.CompanySize, profile.Headquarters, profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyProfileRepo) UpdateVerificationStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE company_profiles SET verification_status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

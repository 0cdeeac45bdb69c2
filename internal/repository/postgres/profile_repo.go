package postgres

import (
	"context"
	"errors"
	"time"

	"placewell-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type profileRepo struct {
	db *pgxpool.Pool
}

// NewProfileRepository returns the Postgres ProfileStore backend.
func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (id, email, full_name, role, phone, avatar_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.Email, profile.FullName, profile.Role,
		profile.Phone, profile.AvatarURL, profile.CreatedAt, profile.UpdatedAt,
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

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, email, full_name, role, phone, avatar_url, created_at, updated_at
              FROM profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT id, email, full_name, role, phone, avatar_url, created_at, updated_at
              FROM profiles WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// Update merges the supplied fields into the existing record and refreshes
// updated_at. COALESCE keeps columns untouched when the field is nil.
func (r *profileRepo) Update(ctx context.Context, id string, fields domain.ProfileUpdate) (*domain.Profile, error) {
	query := `UPDATE profiles SET
                full_name  = COALESCE($2, full_name),
                phone      = COALESCE($3, phone),
                avatar_url = COALESCE($4, avatar_url),
                updated_at = $5
              WHERE id = $1
              RETURNING id, email, full_name, role, phone, avatar_url, created_at, updated_at`

	return r.scanOne(r.db.QueryRow(ctx, query, id,
		fields.FullName, fields.Phone, fields.AvatarURL, time.Now()))
}

func (r *profileRepo) scanOne(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.FullName, &profile.Role,
		&profile.Phone, &profile.AvatarURL, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

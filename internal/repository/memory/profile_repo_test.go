package memory_test

import (
	"context"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func TestProfileRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then Get returns an equal record with timestamps", func(t *testing.T) {
		repo := memory.NewProfileRepository()

		profile := &domain.Profile{
			Email:    "a@example.com",
			FullName: "Alice Example",
			Role:     domain.RoleStudent,
		}
		assert.NoError(t, repo.Create(ctx, profile))
		assert.NotEmpty(t, profile.ID)
		assert.False(t, profile.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, profile.ID)
		assert.NoError(t, err)
		assert.Equal(t, profile.Email, got.Email)
		assert.Equal(t, profile.FullName, got.FullName)
		assert.Equal(t, profile.CreatedAt, got.CreatedAt)
	})

	t.Run("Get on a missing id returns NotFound", func(t *testing.T) {
		repo := memory.NewProfileRepository()
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		repo := memory.NewProfileRepository()
		assert.NoError(t, repo.Create(ctx, &domain.Profile{Email: "dup@example.com", FullName: "First"}))
		err := repo.Create(ctx, &domain.Profile{Email: "DUP@example.com", FullName: "Second"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("Update merges only the supplied fields", func(t *testing.T) {
		repo := memory.NewProfileRepository()
		phone := "+919900112233"
		profile := &domain.Profile{Email: "b@example.com", FullName: "Before", Phone: &phone}
		assert.NoError(t, repo.Create(ctx, profile))

		name := "After"
		updated, err := repo.Update(ctx, profile.ID, domain.ProfileUpdate{FullName: &name})
		assert.NoError(t, err)
		assert.Equal(t, "After", updated.FullName)
		// Phone was not supplied and must survive
		assert.Equal(t, &phone, updated.Phone)
	})

	t.Run("Update on a nonexistent id returns NotFound and leaves the store unchanged", func(t *testing.T) {
		repo := memory.NewProfileRepository()
		profile := &domain.Profile{Email: "c@example.com", FullName: "Carol"}
		assert.NoError(t, repo.Create(ctx, profile))

		name := "Mallory"
		_, err := repo.Update(ctx, "missing", domain.ProfileUpdate{FullName: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		got, err := repo.GetByID(ctx, profile.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Carol", got.FullName)
	})

	t.Run("Returned records are copies, not aliases", func(t *testing.T) {
		repo := memory.NewProfileRepository()
		profile := &domain.Profile{Email: "d@example.com", FullName: "Dana"}
		assert.NoError(t, repo.Create(ctx, profile))

		got, _ := repo.GetByID(ctx, profile.ID)
		got.FullName = "Tampered"

		again, _ := repo.GetByID(ctx, profile.ID)
		assert.Equal(t, "Dana", again.FullName)
	})
}

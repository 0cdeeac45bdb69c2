package memory_test

import (
	"context"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func TestApplicationRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("Second application for the same pair is rejected", func(t *testing.T) {
		repo := memory.NewApplicationRepository()

		first := &domain.Application{JobID: "job-1", StudentID: "student-1"}
		assert.NoError(t, repo.Create(ctx, first))
		assert.Equal(t, domain.ApplicationStatusApplied, first.Status)

		second := &domain.Application{JobID: "job-1", StudentID: "student-1"}
		assert.ErrorIs(t, repo.Create(ctx, second), domain.ErrAlreadyExists)

		// Same student, different job is fine
		assert.NoError(t, repo.Create(ctx, &domain.Application{JobID: "job-2", StudentID: "student-1"}))
	})

	t.Run("CheckExists reflects the pair index", func(t *testing.T) {
		repo := memory.NewApplicationRepository()
		assert.NoError(t, repo.Create(ctx, &domain.Application{JobID: "job-1", StudentID: "student-1"}))

		exists, err := repo.CheckExists(ctx, "job-1", "student-1")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.CheckExists(ctx, "job-1", "student-2")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("UpdateStatus on a missing id returns NotFound", func(t *testing.T) {
		repo := memory.NewApplicationRepository()
		err := repo.UpdateStatus(ctx, "missing", domain.ApplicationStatusScreening)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

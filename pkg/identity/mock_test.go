package identity_test

import (
	"context"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/identity"

	"github.com/stretchr/testify/assert"
)

func TestMockProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Sign-up issues a usable session", func(t *testing.T) {
		provider := identity.NewMockProvider()

		user, session, err := provider.SignUp(ctx, "a@example.com", "secret123", nil)
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, session.AccessToken)

		got, err := provider.GetUser(ctx, session.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Duplicate email is rejected case-insensitively", func(t *testing.T) {
		provider := identity.NewMockProvider()
		_, _, err := provider.SignUp(ctx, "a@example.com", "secret123", nil)
		assert.NoError(t, err)

		_, _, err = provider.SignUp(ctx, "A@Example.com", "other456", nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("Sign-in checks the password", func(t *testing.T) {
		provider := identity.NewMockProvider()
		_, _, err := provider.SignUp(ctx, "a@example.com", "secret123", nil)
		assert.NoError(t, err)

		_, _, err = provider.SignInWithPassword(ctx, "a@example.com", "wrong")
		assert.Error(t, err)

		user, session, err := provider.SignInWithPassword(ctx, "a@example.com", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, session.AccessToken)
	})

	t.Run("Sign-out revokes the session", func(t *testing.T) {
		provider := identity.NewMockProvider()
		_, session, err := provider.SignUp(ctx, "a@example.com", "secret123", nil)
		assert.NoError(t, err)

		assert.NoError(t, provider.SignOut(ctx, session.AccessToken))

		_, err = provider.GetUser(ctx, session.AccessToken)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		// Revoking an unknown token is a no-op
		assert.NoError(t, provider.SignOut(ctx, "unknown"))
	})
}

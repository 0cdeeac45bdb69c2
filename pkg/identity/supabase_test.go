package identity_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/identity"

	"github.com/stretchr/testify/assert"
)

func gotrueServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		handler(w, r)
	}))
}

func TestSupabaseSignUp(t *testing.T) {
	t.Run("Posts to the signup endpoint and returns the session", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			fmt.Fprint(w, `{"access_token":"tok-1","refresh_token":"ref-1","expires_in":3600,"user":{"id":"user-1","email":"student@example.com"}}`)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		user, session, err := provider.SignUp(context.Background(), "student@example.com", "password123", map[string]string{"role": "student"})
		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "tok-1", session.AccessToken)
	})

	t.Run("Duplicate registration maps to the sentinel", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"error_code":"user_already_exists","msg":"User already registered"}`)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		_, _, err := provider.SignUp(context.Background(), "student@example.com", "password123", nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})
}

func TestSupabaseSignIn(t *testing.T) {
	t.Run("Uses the password grant", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			fmt.Fprint(w, `{"access_token":"tok-2","refresh_token":"ref-2","expires_in":3600,"user":{"id":"user-1","email":"student@example.com"}}`)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		_, session, err := provider.SignInWithPassword(context.Background(), "student@example.com", "password123")
		assert.NoError(t, err)
		assert.Equal(t, "tok-2", session.AccessToken)
	})

	t.Run("Bad credentials surface the service message", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error_description":"Invalid login credentials"}`)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		_, _, err := provider.SignInWithPassword(context.Background(), "student@example.com", "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid login credentials")
	})
}

func TestSupabaseUserScopedCalls(t *testing.T) {
	t.Run("GetUser sends the access token as bearer", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"id":"user-1","email":"student@example.com"}`)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		user, err := provider.GetUser(context.Background(), "tok-1")
		assert.NoError(t, err)
		assert.Equal(t, "student@example.com", user.Email)
	})

	t.Run("SignOut posts to logout", func(t *testing.T) {
		srv := gotrueServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/logout", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		})
		defer srv.Close()

		provider := identity.NewSupabaseProvider(srv.URL, "anon-key")
		assert.NoError(t, provider.SignOut(context.Background(), "tok-1"))
	})
}

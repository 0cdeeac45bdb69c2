package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"placewell-backend/internal/domain"
)

// SupabaseProvider talks to the Supabase GoTrue REST API. Every request
// carries the anon key as apikey header; user-scoped calls also carry the
// access token as bearer.
type SupabaseProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSupabaseProvider(supabaseURL, apiKey string) *SupabaseProvider {
	return &SupabaseProvider{
		baseURL: strings.TrimRight(supabaseURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// gotrueSession mirrors the GoTrue token payload.
type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int        `json:"expires_in"`
	User         gotrueUser `json:"user"`
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueError struct {
	Message   string `json:"msg"`
	ErrorDesc string `json:"error_description"`
	Code      string `json:"error_code"`
}

func (e *gotrueError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorDesc
}

func (p *SupabaseProvider) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.AuthUser, *domain.AuthSession, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}

	var session gotrueSession
	if err := p.post(ctx, "/signup", "", payload, &session); err != nil {
		return nil, nil, err
	}
	user, authSession := session.toDomain()
	return user, authSession, nil
}

func (p *SupabaseProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthUser, *domain.AuthSession, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var session gotrueSession
	if err := p.post(ctx, "/token?grant_type=password", "", payload, &session); err != nil {
		return nil, nil, err
	}
	user, authSession := session.toDomain()
	return user, authSession, nil
}

func (p *SupabaseProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.post(ctx, "/logout", accessToken, nil, nil)
}

func (p *SupabaseProvider) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	p.setHeaders(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.decodeError(resp)
	}

	var user gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &domain.AuthUser{ID: user.ID, Email: user.Email}, nil
}

func (p *SupabaseProvider) post(ctx context.Context, path, accessToken string, payload any, out any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, &body)
	if err != nil {
		return err
	}
	p.setHeaders(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return p.decodeError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (p *SupabaseProvider) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}

func (p *SupabaseProvider) decodeError(resp *http.Response) error {
	var gtErr gotrueError
	_ = json.NewDecoder(resp.Body).Decode(&gtErr)

	// GoTrue reports duplicate registrations either via error code or message
	if gtErr.Code == "user_already_exists" || strings.Contains(gtErr.text(), "already registered") {
		return domain.ErrAlreadyExists
	}
	if gtErr.text() != "" {
		return fmt.Errorf("supabase auth: %s (status %d)", gtErr.text(), resp.StatusCode)
	}
	return fmt.Errorf("supabase auth: unexpected status %d", resp.StatusCode)
}

func (s *gotrueSession) toDomain() (*domain.AuthUser, *domain.AuthSession) {
	user := &domain.AuthUser{ID: s.User.ID, Email: s.User.Email}
	return user, &domain.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(s.ExpiresIn) * time.Second),
		User:         *user,
	}
}

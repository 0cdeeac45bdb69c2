package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"
	"placewell-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Auth state change events
const (
	AuthEventSignedIn  = "signed_in"
	AuthEventSignedOut = "signed_out"
)

type authGateway struct {
	identity    domain.IdentityProvider
	profileRepo domain.ProfileRepository
	studentRepo domain.StudentProfileRepository
	companyRepo domain.CompanyProfileRepository
	validate    *validator.Validate

	mu          sync.Mutex
	subscribers map[int]func(domain.AuthState)
	nextSubID   int
}

func NewAuthGateway(
	identity domain.IdentityProvider,
	profileRepo domain.ProfileRepository,
	studentRepo domain.StudentProfileRepository,
	companyRepo domain.CompanyProfileRepository,
	validate *validator.Validate,
) domain.AuthGateway {
	return &authGateway{
		identity:    identity,
		profileRepo: profileRepo,
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		validate:    validate,
		subscribers: make(map[int]func(domain.AuthState)),
	}
}

// SignUp runs the registration sequence: duplicate check, identity record,
// base profile, then the role-specific profile. Steps after the identity
// record are best-effort: a failure is logged and does NOT roll back the
// already-created identity, so a sign-up can succeed with a missing role
// profile. There is no compensating action for that gap.
func (g *authGateway) SignUp(ctx context.Context, input domain.SignUpInput) (*domain.AuthResult, error) {
	if err := g.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// 1. Reject if the email is already registered. Must happen before any
	// side effect.
	existing, err := g.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("This email is already registered")
	}

	// 2. Create the identity record
	user, session, err := g.identity.SignUp(ctx, input.Email, input.Password, map[string]string{
		"full_name": input.FullName,
		"role":      input.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("This email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	// 3. Create the base profile
	profile := &domain.Profile{
		ID:       user.ID,
		Email:    input.Email,
		FullName: input.FullName,
		Role:     input.Role,
	}
	if input.Phone != "" {
		profile.Phone = &input.Phone
	}
	if err := g.profileRepo.Create(ctx, profile); err != nil {
		logger.Log.Warn("Profile creation failed after identity creation",
			"user_id", user.ID, "error", err)
		profile = nil
	}

	// 4-5. Role-specific profile, also best-effort
	if profile != nil {
		g.createRoleProfile(ctx, profile, input)
	}

	g.notify(domain.AuthState{Event: AuthEventSignedIn, Session: session})

	return &domain.AuthResult{User: user, Session: session, Profile: profile}, nil
}

func (g *authGateway) createRoleProfile(ctx context.Context, profile *domain.Profile, input domain.SignUpInput) {
	switch {
	case input.Role == domain.RoleStudent && input.CollegeName != "":
		student := &domain.StudentProfile{
			ProfileID:       profile.ID,
			CollegeName:     input.CollegeName,
			Degree:          "",
			GraduationYear:  time.Now().Year(),
			Skills:          []string{},
			Certifications:  []string{},
			Languages:       []string{},
			ExperienceLevel: domain.ExperienceLevelEntry,
			PlacementStatus: domain.PlacementStatusSeeking,
		}
		if err := g.studentRepo.Create(ctx, student); err != nil {
			logger.Log.Warn("Student profile creation failed during sign-up",
				"user_id", profile.ID, "error", err)
		}
	case input.Role == domain.RoleCompany && input.CompanyName != "":
		company := &domain.CompanyProfile{
			ProfileID:          profile.ID,
			CompanyName:        input.CompanyName,
			VerificationStatus: domain.VerificationStatusPending,
		}
		if err := g.companyRepo.Create(ctx, company); err != nil {
			logger.Log.Warn("Company profile creation failed during sign-up",
				"user_id", profile.ID, "error", err)
		}
	}
}

func (g *authGateway) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, session, err := g.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	profile, err := g.profileRepo.GetByID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	g.notify(domain.AuthState{Event: AuthEventSignedIn, Session: session})

	return &domain.AuthResult{User: user, Session: session, Profile: profile}, nil
}

func (g *authGateway) SignOut(ctx context.Context, accessToken string) error {
	if err := g.identity.SignOut(ctx, accessToken); err != nil {
		return apperror.Internal(err)
	}
	g.notify(domain.AuthState{Event: AuthEventSignedOut})
	return nil
}

func (g *authGateway) GetCurrentUser(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := g.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// OnAuthStateChange registers a callback invoked on session transitions. The
// returned handle unsubscribes exactly once; further calls are no-ops.
func (g *authGateway) OnAuthStateChange(fn func(domain.AuthState)) *domain.AuthSubscription {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = fn

	return domain.NewAuthSubscription(func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, id)
	})
}

func (g *authGateway) notify(state domain.AuthState) {
	g.mu.Lock()
	callbacks := make([]func(domain.AuthState), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		callbacks = append(callbacks, fn)
	}
	g.mu.Unlock()

	for _, fn := range callbacks {
		fn(state)
	}
}

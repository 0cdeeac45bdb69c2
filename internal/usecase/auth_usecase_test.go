package usecase_test

import (
	"context"
	"errors"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/logger"
	"placewell-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, id string, fields domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) Create(ctx context.Context, profile *domain.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockStudentRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.StudentProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}

func (m *MockStudentRepo) Update(ctx context.Context, profile *domain.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, profile *domain.CompanyProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCompanyRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, profile *domain.CompanyProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCompanyRepo) UpdateVerificationStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.AuthUser, *domain.AuthSession, error) {
	args := m.Called(ctx, email, password, metadata)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.AuthUser), args.Get(1).(*domain.AuthSession), args.Error(2)
}

func (m *MockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthUser, *domain.AuthSession, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.AuthUser), args.Get(1).(*domain.AuthSession), args.Error(2)
}

func (m *MockIdentity) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockIdentity) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func studentSignUpInput() domain.SignUpInput {
	return domain.SignUpInput{
		Email:       "student@example.com",
		Password:    "password123",
		FullName:    "Test Student",
		Role:        domain.RoleStudent,
		CollegeName: "Test College",
	}
}

func TestAuthGatewaySignUp(t *testing.T) {
	logger.Init()

	t.Run("Registered email is rejected before any side effect", func(t *testing.T) {
		identity := new(MockIdentity)
		profileRepo := new(MockProfileRepo)
		gateway := usecase.NewAuthGateway(identity, profileRepo, new(MockStudentRepo), new(MockCompanyRepo), newTestValidator())

		profileRepo.On("GetByEmail", mock.Anything, "student@example.com").
			Return(&domain.Profile{ID: "existing", Email: "student@example.com"}, nil)

		result, err := gateway.SignUp(context.Background(), studentSignUpInput())
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "already registered")
		identity.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Student sign-up creates identity, profile and student profile", func(t *testing.T) {
		identity := new(MockIdentity)
		profileRepo := new(MockProfileRepo)
		studentRepo := new(MockStudentRepo)
		gateway := usecase.NewAuthGateway(identity, profileRepo, studentRepo, new(MockCompanyRepo), newTestValidator())

		user := &domain.AuthUser{ID: "user-1", Email: "student@example.com"}
		session := &domain.AuthSession{AccessToken: "token-1", User: *user}

		profileRepo.On("GetByEmail", mock.Anything, "student@example.com").Return(nil, domain.ErrNotFound)
		identity.On("SignUp", mock.Anything, "student@example.com", "password123", mock.Anything).Return(user, session, nil)
		profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ID == "user-1" && p.Role == domain.RoleStudent
		})).Return(nil)
		studentRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.StudentProfile) bool {
			return s.ProfileID == "user-1" && s.CollegeName == "Test College" &&
				s.PlacementStatus == domain.PlacementStatusSeeking
		})).Return(nil)

		result, err := gateway.SignUp(context.Background(), studentSignUpInput())
		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.User.ID)
		assert.Equal(t, "token-1", result.Session.AccessToken)
		assert.NotNil(t, result.Profile)
		studentRepo.AssertExpectations(t)
	})

	t.Run("Role profile failure does not fail the sign-up", func(t *testing.T) {
		identity := new(MockIdentity)
		profileRepo := new(MockProfileRepo)
		studentRepo := new(MockStudentRepo)
		gateway := usecase.NewAuthGateway(identity, profileRepo, studentRepo, new(MockCompanyRepo), newTestValidator())

		user := &domain.AuthUser{ID: "user-2", Email: "student@example.com"}
		session := &domain.AuthSession{AccessToken: "token-2", User: *user}

		profileRepo.On("GetByEmail", mock.Anything, "student@example.com").Return(nil, domain.ErrNotFound)
		identity.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(user, session, nil)
		profileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		studentRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		result, err := gateway.SignUp(context.Background(), studentSignUpInput())
		assert.NoError(t, err)
		assert.NotNil(t, result.Session)
	})

	t.Run("Identity duplicate maps to conflict", func(t *testing.T) {
		identity := new(MockIdentity)
		profileRepo := new(MockProfileRepo)
		gateway := usecase.NewAuthGateway(identity, profileRepo, new(MockStudentRepo), new(MockCompanyRepo), newTestValidator())

		profileRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		identity.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, domain.ErrAlreadyExists)

		_, err := gateway.SignUp(context.Background(), studentSignUpInput())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("Invalid input never reaches the provider", func(t *testing.T) {
		identity := new(MockIdentity)
		gateway := usecase.NewAuthGateway(identity, new(MockProfileRepo), new(MockStudentRepo), new(MockCompanyRepo), newTestValidator())

		input := studentSignUpInput()
		input.Password = "short"

		_, err := gateway.SignUp(context.Background(), input)
		assert.Error(t, err)
		identity.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthStateSubscription(t *testing.T) {
	logger.Init()

	identity := new(MockIdentity)
	profileRepo := new(MockProfileRepo)
	gateway := usecase.NewAuthGateway(identity, profileRepo, new(MockStudentRepo), new(MockCompanyRepo), newTestValidator())

	var events []string
	sub := gateway.OnAuthStateChange(func(state domain.AuthState) {
		events = append(events, state.Event)
	})

	user := &domain.AuthUser{ID: "user-3", Email: "a@example.com"}
	session := &domain.AuthSession{AccessToken: "token-3", User: *user}
	identity.On("SignInWithPassword", mock.Anything, "a@example.com", "pw").Return(user, session, nil)
	identity.On("SignOut", mock.Anything, "token-3").Return(nil)
	profileRepo.On("GetByID", mock.Anything, "user-3").Return(&domain.Profile{ID: "user-3"}, nil)

	_, err := gateway.SignIn(context.Background(), "a@example.com", "pw")
	assert.NoError(t, err)
	assert.Equal(t, []string{"signed_in"}, events)

	assert.NoError(t, gateway.SignOut(context.Background(), "token-3"))
	assert.Equal(t, []string{"signed_in", "signed_out"}, events)

	// Unsubscribe stops delivery and is idempotent
	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.NoError(t, gateway.SignOut(context.Background(), "token-3"))
	assert.Len(t, events, 2)
}

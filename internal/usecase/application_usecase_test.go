package usecase_test

import (
	"context"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/ai"
	"placewell-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) FetchPublished(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockJobRepo) IncrementViewCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) IncrementFilledPositions(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, studentID string) (bool, error) {
	args := m.Called(ctx, jobID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func applicationDeps() (*MockApplicationRepo, *MockJobRepo, *MockStudentRepo, *MockCompanyRepo, domain.ApplicationUsecase) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	studentRepo := new(MockStudentRepo)
	companyRepo := new(MockCompanyRepo)
	// Unconfigured advisor, applications carry the fallback score
	advisor := usecase.NewMatchAdvisor(ai.NewChatClient("", ""))
	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, studentRepo, companyRepo, advisor)
	return appRepo, jobRepo, studentRepo, companyRepo, uc
}

func publishedJob() *domain.JobPosting {
	return &domain.JobPosting{ID: "job-1", CompanyID: "company-1", Title: "Backend Engineer", Description: "Build APIs", Status: domain.JobStatusPublished}
}

func TestApplyToJob(t *testing.T) {
	logger.Init()
	ctx := context.Background()

	t.Run("Successful apply attaches the advisory score", func(t *testing.T) {
		appRepo, jobRepo, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		appRepo.On("CheckExists", mock.Anything, "job-1", "student-1").Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		jobRepo.On("IncrementApplicationCount", mock.Anything, "job-1").Return(nil)

		app, err := uc.ApplyToJob(ctx, "profile-1", "job-1", "cover", "https://resume")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		// Advisor is unconfigured so the fallback score is attached
		assert.NotNil(t, app.AIMatchScore)
		assert.Equal(t, 50, *app.AIMatchScore)
		assert.Len(t, app.MatchReasons, 1)
	})

	t.Run("Applying twice is a conflict", func(t *testing.T) {
		appRepo, jobRepo, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		appRepo.On("CheckExists", mock.Anything, "job-1", "student-1").Return(true, nil)

		_, err := uc.ApplyToJob(ctx, "profile-1", "job-1", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Draft job does not accept applications", func(t *testing.T) {
		_, jobRepo, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		draft := publishedJob()
		draft.Status = domain.JobStatusDraft
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(draft, nil)

		_, err := uc.ApplyToJob(ctx, "profile-1", "job-1", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not accepting")
	})

	t.Run("Failed counter bump does not fail the apply", func(t *testing.T) {
		appRepo, jobRepo, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		appRepo.On("CheckExists", mock.Anything, "job-1", "student-1").Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		jobRepo.On("IncrementApplicationCount", mock.Anything, "job-1").Return(assert.AnError)

		_, err := uc.ApplyToJob(ctx, "profile-1", "job-1", "", "")
		assert.NoError(t, err)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	logger.Init()
	ctx := context.Background()

	ownCompany := &domain.CompanyProfile{ID: "company-1", ProfileID: "company-profile-1"}

	t.Run("Owner advances the pipeline", func(t *testing.T) {
		appRepo, jobRepo, _, companyRepo, uc := applicationDeps()
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", JobID: "job-1", Status: domain.ApplicationStatusApplied}, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(ownCompany, nil)
		appRepo.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationStatusScreening).Return(nil)

		err := uc.UpdateApplicationStatus(ctx, "company-profile-1", "app-1", domain.ApplicationStatusScreening)
		assert.NoError(t, err)
	})

	t.Run("Skipping pipeline stages is rejected", func(t *testing.T) {
		appRepo, jobRepo, _, companyRepo, uc := applicationDeps()
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", JobID: "job-1", Status: domain.ApplicationStatusApplied}, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(ownCompany, nil)

		err := uc.UpdateApplicationStatus(ctx, "company-profile-1", "app-1", domain.ApplicationStatusSelected)
		assert.Error(t, err)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Company cannot withdraw on the student's behalf", func(t *testing.T) {
		appRepo, jobRepo, _, companyRepo, uc := applicationDeps()
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", JobID: "job-1", Status: domain.ApplicationStatusApplied}, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(ownCompany, nil)

		err := uc.UpdateApplicationStatus(ctx, "company-profile-1", "app-1", domain.ApplicationStatusWithdrawn)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only the student")
	})

	t.Run("Selecting a candidate bumps the filled counter", func(t *testing.T) {
		appRepo, jobRepo, _, companyRepo, uc := applicationDeps()
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", JobID: "job-1", Status: domain.ApplicationStatusInterviewed}, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(ownCompany, nil)
		appRepo.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationStatusSelected).Return(nil)
		jobRepo.On("IncrementFilledPositions", mock.Anything, "job-1").Return(nil)

		err := uc.UpdateApplicationStatus(ctx, "company-profile-1", "app-1", domain.ApplicationStatusSelected)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		appRepo, jobRepo, _, companyRepo, uc := applicationDeps()
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", JobID: "job-1", Status: domain.ApplicationStatusApplied}, nil)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "other-profile").
			Return(&domain.CompanyProfile{ID: "company-2"}, nil)

		err := uc.UpdateApplicationStatus(ctx, "other-profile", "app-1", domain.ApplicationStatusScreening)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "do not own")
	})
}

func TestWithdrawApplication(t *testing.T) {
	logger.Init()
	ctx := context.Background()

	t.Run("Terminal application cannot be withdrawn", func(t *testing.T) {
		appRepo, _, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", StudentID: "student-1", Status: domain.ApplicationStatusRejected}, nil)

		err := uc.WithdrawApplication(ctx, "profile-1", "app-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no longer be withdrawn")
	})

	t.Run("Another student's application is off limits", func(t *testing.T) {
		appRepo, _, studentRepo, _, uc := applicationDeps()
		studentRepo.On("GetByProfileID", mock.Anything, "profile-1").Return(testStudentProfile, nil)
		appRepo.On("GetByID", mock.Anything, "app-1").
			Return(&domain.Application{ID: "app-1", StudentID: "student-2", Status: domain.ApplicationStatusApplied}, nil)

		err := uc.WithdrawApplication(ctx, "profile-1", "app-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own applications")
	})
}

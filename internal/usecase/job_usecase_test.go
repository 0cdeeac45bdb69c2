package usecase_test

import (
	"context"
	"testing"

	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func jobDeps() (*MockJobRepo, *MockCompanyRepo, domain.JobUsecase) {
	jobRepo := new(MockJobRepo)
	companyRepo := new(MockCompanyRepo)
	validate := validator.New()
	validation.RegisterValidators(validate)
	return jobRepo, companyRepo, usecase.NewJobUsecase(jobRepo, companyRepo, validate)
}

func verifiedCompany() *domain.CompanyProfile {
	return &domain.CompanyProfile{
		ID:                 "company-1",
		ProfileID:          "company-profile-1",
		CompanyName:        "Acme Corp",
		VerificationStatus: domain.VerificationStatusVerified,
	}
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("New postings start as drafts owned by the caller's company", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(verifiedCompany(), nil)
		jobRepo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.JobPosting) bool {
			return j.CompanyID == "company-1" && j.Status == domain.JobStatusDraft
		})).Return(nil)

		job := &domain.JobPosting{Title: "Backend Engineer", Description: "Build APIs"}
		err := uc.CreateJob(ctx, "company-profile-1", job)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("No company profile means no posting", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").
			Return(nil, domain.ErrNotFound)

		err := uc.CreateJob(ctx, "company-profile-1", &domain.JobPosting{Title: "Backend Engineer", Description: "x"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "company profile")
		jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Inverted salary range is rejected", func(t *testing.T) {
		_, companyRepo, uc := jobDeps()
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(verifiedCompany(), nil)

		job := &domain.JobPosting{Title: "Backend Engineer", Description: "Build APIs", SalaryMin: 90000, SalaryMax: 40000}
		err := uc.CreateJob(ctx, "company-profile-1", job)
		assert.Error(t, err)
	})
}

func TestUpdateJobStatus(t *testing.T) {
	ctx := context.Background()

	draftJob := func() *domain.JobPosting {
		return &domain.JobPosting{ID: "job-1", CompanyID: "company-1", Title: "Backend Engineer", Description: "Build APIs", Status: domain.JobStatusDraft}
	}

	t.Run("Verified company publishes a draft", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(draftJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(verifiedCompany(), nil)
		jobRepo.On("UpdateStatus", mock.Anything, "job-1", domain.JobStatusPublished).Return(nil)

		err := uc.UpdateJobStatus(ctx, "company-profile-1", "job-1", domain.JobStatusPublished)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Unverified company cannot publish", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		pending := verifiedCompany()
		pending.VerificationStatus = domain.VerificationStatusPending
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(draftJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(pending, nil)

		err := uc.UpdateJobStatus(ctx, "company-profile-1", "job-1", domain.JobStatusPublished)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "verified")
		jobRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Draft cannot jump straight to closed", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(draftJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "company-profile-1").Return(verifiedCompany(), nil)

		err := uc.UpdateJobStatus(ctx, "company-profile-1", "job-1", domain.JobStatusClosed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot move job")
	})

	t.Run("Only the owning company manages the posting", func(t *testing.T) {
		jobRepo, companyRepo, uc := jobDeps()
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(draftJob(), nil)
		companyRepo.On("GetByProfileID", mock.Anything, "other-profile").
			Return(&domain.CompanyProfile{ID: "company-2"}, nil)

		err := uc.UpdateJobStatus(ctx, "other-profile", "job-1", domain.JobStatusPublished)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "do not own")
	})
}

func TestGetJobDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("Public read of a published job counts a view", func(t *testing.T) {
		jobRepo, _, uc := jobDeps()
		posting := &domain.JobPosting{ID: "job-1", Status: domain.JobStatusPublished, ViewCount: 4}
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(posting, nil)
		jobRepo.On("IncrementViewCount", mock.Anything, "job-1").Return(nil)

		job, err := uc.GetJobDetails(ctx, "job-1", true)
		assert.NoError(t, err)
		assert.Equal(t, 5, job.ViewCount)
	})

	t.Run("Draft views are never counted", func(t *testing.T) {
		jobRepo, _, uc := jobDeps()
		posting := &domain.JobPosting{ID: "job-1", Status: domain.JobStatusDraft}
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(posting, nil)

		_, err := uc.GetJobDetails(ctx, "job-1", true)
		assert.NoError(t, err)
		jobRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
	})

	t.Run("A failed counter write does not fail the read", func(t *testing.T) {
		jobRepo, _, uc := jobDeps()
		posting := &domain.JobPosting{ID: "job-1", Status: domain.JobStatusPublished, ViewCount: 4}
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(posting, nil)
		jobRepo.On("IncrementViewCount", mock.Anything, "job-1").Return(assert.AnError)

		job, err := uc.GetJobDetails(ctx, "job-1", true)
		assert.NoError(t, err)
		assert.Equal(t, 4, job.ViewCount)
	})
}

func TestListJobsPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("Out-of-range paging falls back to defaults", func(t *testing.T) {
		jobRepo, _, uc := jobDeps()
		jobRepo.On("FetchPublished", mock.Anything, 20, 0).Return([]domain.JobPosting{}, int64(0), nil)

		_, _, err := uc.ListPublishedJobs(ctx, 0, 500)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Offset follows the page number", func(t *testing.T) {
		jobRepo, _, uc := jobDeps()
		jobRepo.On("FetchPublished", mock.Anything, 10, 20).Return([]domain.JobPosting{}, int64(0), nil)

		_, _, err := uc.ListPublishedJobs(ctx, 3, 10)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})
}

package usecase

import (
	"context"
	"errors"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyProfileRepository
	validate    *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyProfileRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, companyRepo: companyRepo, validate: validate}
}

// CreateJob creates a draft posting owned by the caller's company profile.
func (uc *jobUsecase) CreateJob(ctx context.Context, profileID string, job *domain.JobPosting) error {
	company, err := uc.companyRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return apperror.Forbidden("Create a company profile before posting jobs")
	}

	if err := uc.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin {
		return apperror.BadRequest("Maximum salary cannot be below minimum salary")
	}

	job.CompanyID = company.ID
	job.Status = domain.JobStatusDraft

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetJobDetails fetches a posting. Public reads count a view; the counter is
// advisory, a failed increment never fails the read.
func (uc *jobUsecase) GetJobDetails(ctx context.Context, id string, countView bool) (*domain.JobPosting, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	if countView && job.Status == domain.JobStatusPublished {
		if err := uc.jobRepo.IncrementViewCount(ctx, id); err == nil {
			job.ViewCount++
		}
	}
	return job, nil
}

func (uc *jobUsecase) ListPublishedJobs(ctx context.Context, page, pageSize int) ([]domain.JobPosting, int64, error) {
	limit, offset := paginate(page, pageSize)
	return uc.jobRepo.FetchPublished(ctx, limit, offset)
}

func (uc *jobUsecase) ListCompanyJobs(ctx context.Context, profileID string, page, pageSize int) ([]domain.JobPosting, int64, error) {
	company, err := uc.companyRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, 0, apperror.NotFound("Company profile not found")
	}
	limit, offset := paginate(page, pageSize)
	return uc.jobRepo.FetchByCompanyID(ctx, company.ID, limit, offset)
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, profileID string, job *domain.JobPosting) error {
	if _, err := uc.ownedJob(ctx, profileID, job.ID); err != nil {
		return err
	}
	if err := uc.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// UpdateJobStatus moves a posting along its lifecycle. Publishing requires a
// verified company.
func (uc *jobUsecase) UpdateJobStatus(ctx context.Context, profileID string, jobID string, status string) error {
	job, err := uc.ownedJob(ctx, profileID, jobID)
	if err != nil {
		return err
	}

	if !domain.CanTransitionJobStatus(job.Status, status) {
		return apperror.BadRequest("Cannot move job from " + job.Status + " to " + status)
	}

	if status == domain.JobStatusPublished {
		company, err := uc.companyRepo.GetByProfileID(ctx, profileID)
		if err != nil {
			return apperror.Internal(err)
		}
		if company.VerificationStatus != domain.VerificationStatusVerified {
			return apperror.Forbidden("Your company must be verified before publishing jobs")
		}
	}

	if err := uc.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ownedJob loads the job and checks it belongs to the caller's company.
func (uc *jobUsecase) ownedJob(ctx context.Context, profileID string, jobID string) (*domain.JobPosting, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}

	company, err := uc.companyRepo.GetByProfileID(ctx, profileID)
	if err != nil || company.ID != job.CompanyID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}
	return job, nil
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

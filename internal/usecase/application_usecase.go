package usecase

import (
	"context"
	"errors"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"
	"placewell-backend/pkg/logger"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	studentRepo     domain.StudentProfileRepository
	companyRepo     domain.CompanyProfileRepository
	advisor         MatchAdvisor
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	studentRepo domain.StudentProfileRepository,
	companyRepo domain.CompanyProfileRepository,
	advisor MatchAdvisor,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		studentRepo:     studentRepo,
		companyRepo:     companyRepo,
		advisor:         advisor,
	}
}

// ApplyToJob submits an application to a published job. The AI match score is
// advisory and attached best-effort; it never blocks the apply.
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, profileID string, jobID string, coverLetter, resumeURL string) (*domain.Application, error) {
	// 1. Resolve the caller's student profile
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.Forbidden("Complete your student profile before applying")
	}

	// 2. Validate job exists and is open for applications
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	// 3. Enforce one application per (job, student)
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, student.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		JobID:     jobID,
		StudentID: student.ID,
		Status:    domain.ApplicationStatusApplied,
	}
	if coverLetter != "" {
		app.CoverLetter = &coverLetter
	}
	if resumeURL != "" {
		app.ResumeURL = &resumeURL
	}

	// 4. Advisory match score; the advisor never errors
	if uc.advisor != nil {
		match := uc.advisor.AnalyzeMatch(ctx, student, job)
		app.AIMatchScore = &match.Score
		app.MatchReasons = match.Reasons
	}

	// 5. Create; the unique index backs up the CheckExists read
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.jobRepo.IncrementApplicationCount(ctx, jobID); err != nil {
		logger.Log.Warn("Failed to bump application count", "job_id", jobID, "error", err)
	}

	return app, nil
}

// GetMyApplications returns all applications of the calling student
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, profileID string) ([]domain.Application, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.NotFound("Student profile not found")
	}
	return uc.applicationRepo.GetByStudentID(ctx, student.ID)
}

// WithdrawApplication moves a non-terminal application to withdrawn.
func (uc *applicationUsecase) WithdrawApplication(ctx context.Context, profileID string, applicationID string) error {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return apperror.NotFound("Student profile not found")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return apperror.NotFound("Application not found")
	}
	if app.StudentID != student.ID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}
	if !domain.CanTransitionApplication(app.Status, domain.ApplicationStatusWithdrawn) {
		return apperror.BadRequest("This application can no longer be withdrawn")
	}

	return uc.applicationRepo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusWithdrawn)
}

// ListByJobID returns all applications for a job owned by the caller's company
func (uc *applicationUsecase) ListByJobID(ctx context.Context, profileID string, jobID string) ([]domain.Application, error) {
	if _, err := uc.validateJobOwnership(ctx, profileID, jobID); err != nil {
		return nil, err
	}
	return uc.applicationRepo.GetByJobID(ctx, jobID)
}

// UpdateApplicationStatus advances the application state machine on behalf of
// the owning company. Selected bumps the job's filled position counter.
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, profileID string, applicationID string, status string) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return apperror.NotFound("Application not found")
	}

	if _, err := uc.validateJobOwnership(ctx, profileID, app.JobID); err != nil {
		return err
	}

	if status == domain.ApplicationStatusWithdrawn {
		return apperror.Forbidden("Only the student can withdraw an application")
	}
	if !domain.CanTransitionApplication(app.Status, status) {
		return apperror.BadRequest("Cannot move application from " + app.Status + " to " + status)
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return apperror.Internal(err)
	}

	if status == domain.ApplicationStatusSelected {
		if err := uc.jobRepo.IncrementFilledPositions(ctx, app.JobID); err != nil {
			logger.Log.Warn("Failed to bump filled positions", "job_id", app.JobID, "error", err)
		}
	}
	return nil
}

// validateJobOwnership checks the job exists and belongs to the caller's company.
func (uc *applicationUsecase) validateJobOwnership(ctx context.Context, profileID string, jobID string) (*domain.JobPosting, error) {
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

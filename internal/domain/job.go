package domain

import (
	"context"
	"time"
)

// Job posting status lifecycle: draft → published → closed/paused
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
	JobStatusPaused    = "paused"
)

// jobStatusTransitions enumerates the allowed lifecycle moves.
var jobStatusTransitions = map[string][]string{
	JobStatusDraft:     {JobStatusPublished},
	JobStatusPublished: {JobStatusClosed, JobStatusPaused},
	JobStatusPaused:    {JobStatusPublished, JobStatusClosed},
}

// CanTransitionJobStatus reports whether a job posting may move between the
// two statuses.
func CanTransitionJobStatus(from, to string) bool {
	for _, next := range jobStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// JobPosting is owned by a CompanyProfile. The counters are monotonically
// adjusted by collaborator actions (views, applications, selections).
type JobPosting struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	Title            string     `json:"title" validate:"required,min=3,max=150"`
	Description      string     `json:"description" validate:"required"`
	Location         *string    `json:"location,omitempty"`
	JobType          *string    `json:"job_type,omitempty"`
	SalaryMin        float64    `json:"salary_min" validate:"min=0"`
	SalaryMax        float64    `json:"salary_max" validate:"min=0"`
	RequiredSkills   []string   `json:"required_skills"`
	Status           string     `json:"status"`
	ViewCount        int        `json:"view_count"`
	ApplicationCount int        `json:"application_count"`
	FilledPositions  int        `json:"filled_positions"`
	TotalPositions   int        `json:"total_positions"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined data for list responses
	CompanyName *string `json:"company_name,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	FetchPublished(ctx context.Context, limit, offset int) ([]JobPosting, int64, error)
	FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]JobPosting, int64, error)
	Update(ctx context.Context, job *JobPosting) error
	UpdateStatus(ctx context.Context, id string, status string) error
	IncrementViewCount(ctx context.Context, id string) error
	IncrementApplicationCount(ctx context.Context, id string) error
	IncrementFilledPositions(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, profileID string, job *JobPosting) error
	GetJobDetails(ctx context.Context, id string, countView bool) (*JobPosting, error)
	ListPublishedJobs(ctx context.Context, page, pageSize int) ([]JobPosting, int64, error)
	ListCompanyJobs(ctx context.Context, profileID string, page, pageSize int) ([]JobPosting, int64, error)
	UpdateJob(ctx context.Context, profileID string, job *JobPosting) error
	UpdateJobStatus(ctx context.Context, profileID string, jobID string, status string) error
}

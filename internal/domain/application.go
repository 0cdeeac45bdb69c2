package domain

import (
	"context"
	"time"
)

// Application status constants. The lifecycle is a finite state machine:
// applied → screening → shortlisted → interviewed → selected/rejected, with
// withdrawn reachable from any non-terminal state.
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusScreening   = "screening"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusSelected    = "selected"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusWithdrawn   = "withdrawn"
)

// applicationTransitions enumerates forward moves. Withdrawn is handled
// separately since it is reachable from every non-terminal state.
var applicationTransitions = map[string][]string{
	ApplicationStatusApplied:     {ApplicationStatusScreening},
	ApplicationStatusScreening:   {ApplicationStatusShortlisted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusInterviewed, ApplicationStatusRejected},
	ApplicationStatusInterviewed: {ApplicationStatusSelected, ApplicationStatusRejected},
}

// IsTerminalApplicationStatus reports whether no further transition exists.
func IsTerminalApplicationStatus(status string) bool {
	return status == ApplicationStatusSelected ||
		status == ApplicationStatusRejected ||
		status == ApplicationStatusWithdrawn
}

// CanTransitionApplication reports whether an application may move from one
// status to another.
func CanTransitionApplication(from, to string) bool {
	if to == ApplicationStatusWithdrawn {
		return !IsTerminalApplicationStatus(from)
	}
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application links a JobPosting and a StudentProfile. At most one application
// may exist per (job, student) pair.
type Application struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	StudentID    string    `json:"student_id"`
	Status       string    `json:"status"`
	CoverLetter  *string   `json:"cover_letter,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	AIMatchScore *int      `json:"ai_match_score,omitempty"`
	MatchReasons []string  `json:"match_reasons,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle    *string `json:"job_title,omitempty"`
	StudentName *string `json:"student_name,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByJobID(ctx context.Context, jobID string) ([]Application, error)
	GetByStudentID(ctx context.Context, studentID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID, studentID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Student operations
	ApplyToJob(ctx context.Context, profileID string, jobID string, coverLetter, resumeURL string) (*Application, error)
	GetMyApplications(ctx context.Context, profileID string) ([]Application, error)
	WithdrawApplication(ctx context.Context, profileID string, applicationID string) error

	// Company operations
	ListByJobID(ctx context.Context, profileID string, jobID string) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, profileID string, applicationID string, status string) error
}

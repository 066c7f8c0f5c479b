package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
)

var (
	ErrNotFound             = apperr.NotFound("application not found")
	ErrAlreadyApplied       = apperr.Conflict("already applied to this posting")
	ErrTransitionNotAllowed = apperr.Conflict("invalid status transition")
	ErrStale                = apperr.Conflict("application status was changed concurrently")
	ErrActorNotAllowed      = apperr.Forbidden("this role cannot set the requested status")
	ErrPostingClosed        = apperr.Validation("posting no longer accepts applications", nil)
)

// Application links a student, a posting and the posting's recruiter.
// JobTitle, JobKind, Company, StudentName and StudentEmail are read-only joins.
type Application struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"jobId"`
	StudentID   uuid.UUID  `json:"studentId"`
	RecruiterID uuid.UUID  `json:"recruiterId"`
	ResumeID    *uuid.UUID `json:"resumeId,omitempty"`
	CoverLetter string     `json:"coverLetter,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	JobTitle     string `json:"jobTitle,omitempty"`
	JobKind      string `json:"jobKind,omitempty"`
	Company      string `json:"company,omitempty"`
	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
}

// Filter narrows application lists. Zero values do not filter.
type Filter struct {
	RecruiterID uuid.UUID
	StudentID   uuid.UUID
	JobID       uuid.UUID
	Status      Status
	Search      string // student name or email
}

// Repository: storage port for applications. Lists are newest first.
type Repository interface {
	// Create fails with ErrAlreadyApplied for a second application of a student to one posting.
	Create(ctx context.Context, a Application) error
	GetForRecruiter(ctx context.Context, recruiterID, id uuid.UUID) (Application, error)
	GetForStudent(ctx context.Context, studentID, id uuid.UUID) (Application, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Application, int, error)
	// Transition moves the application from `from` to `to` and stores n in one
	// atomic unit. It fails with ErrStale when the status is no longer `from`.
	Transition(ctx context.Context, id uuid.UUID, from, to Status, n notification.Notification) (Application, error)
	CountByStatus(ctx context.Context, f Filter) (map[Status]int, error)
}

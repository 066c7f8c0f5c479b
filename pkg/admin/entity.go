package admin

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
)

var (
	ErrNotPending     = apperr.Conflict("recruiter is not pending approval")
	ErrSelfModify     = apperr.Forbidden("admins cannot change or delete their own account")
	ErrUnknownReport  = apperr.Validation("unknown report type", map[string]string{"type": "expected users, postings or applications"})
	ErrInvalidWindow  = apperr.Validation("invalid date range", map[string]string{"from": "must not be after to"})
	ErrStatusMismatch = apperr.Conflict("user status was changed concurrently")
)

// UserFilter narrows the admin user list. Zero values do not filter.
type UserFilter struct {
	Search string // name or email, case-insensitive partial match
	Role   auth.Role
	Status auth.Status
}

// Window is the half-open time range [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

type Overview struct {
	TotalUsers           int                        `json:"totalUsers"`
	UsersByRole          map[auth.Role]int          `json:"usersByRole"`
	UsersByStatus        map[auth.Status]int        `json:"usersByStatus"`
	TotalPostings        int                        `json:"totalPostings"`
	PostingsByKind       map[posting.Kind]int       `json:"postingsByKind"`
	TotalApplications    int                        `json:"totalApplications"`
	ApplicationsByStatus map[application.Status]int `json:"applicationsByStatus"`
	PendingRecruiters    int                        `json:"pendingRecruiters"`
	NewUsersLastWeek     int                        `json:"newUsersLastWeek"`
}

// DayCount is a per-day bucket; Day is YYYY-MM-DD in UTC.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type RecruiterCount struct {
	RecruiterID uuid.UUID `json:"recruiterId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Postings    int       `json:"postings"`
}

type Analytics struct {
	Window               Window                     `json:"window"`
	Registrations        []DayCount                 `json:"registrations"`
	Applications         []DayCount                 `json:"applications"`
	ApplicationsByStatus map[application.Status]int `json:"applicationsByStatus"`
	TopRecruiters        []RecruiterCount           `json:"topRecruiters"`
	Locations            []string                   `json:"locations"`
}

// Report is a tabular export.
type Report struct {
	Title       string     `json:"title"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// Repository: aggregation and user management storage port.
type Repository interface {
	ListUsers(ctx context.Context, f UserFilter, page pagination.Page) ([]auth.User, int, error)
	// SetUserStatus changes the status; when expect is non-empty the change
	// happens only if the current status equals expect, else ErrStatusMismatch.
	SetUserStatus(ctx context.Context, id uuid.UUID, to, expect auth.Status) (auth.User, error)
	// DeleteUser removes the user with profiles, resumes, applications and notifications.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	Overview(ctx context.Context, newSince time.Time) (Overview, error)
	Analytics(ctx context.Context, w Window, top int) (Analytics, error)

	UsersIn(ctx context.Context, w Window) ([]auth.User, error)
	PostingsIn(ctx context.Context, w Window) ([]posting.Posting, error)
	ApplicationsIn(ctx context.Context, w Window) ([]application.Application, error)
}

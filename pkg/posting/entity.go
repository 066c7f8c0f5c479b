package posting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/pagination"
)

var ErrNotFound = apperr.NotFound("posting not found")

type Kind string

const (
	KindJob        Kind = "job"
	KindInternship Kind = "internship"
)

// Posting is a job or internship offer published by a recruiter.
// Postings are immutable once created.
type Posting struct {
	ID          uuid.UUID  `json:"id"`
	Kind        Kind       `json:"kind"`
	PostedBy    uuid.UUID  `json:"postedBy"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	WorkMode    string     `json:"workMode"`
	Skills      []string   `json:"skills"`
	Openings    int        `json:"openings"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	// job only
	EmploymentType  string `json:"employmentType,omitempty"`
	Salary          string `json:"salary,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`

	// internship only
	Duration string `json:"duration,omitempty"`
	Stipend  string `json:"stipend,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether applications are still accepted at t.
func (p Posting) Open(t time.Time) bool {
	return p.Deadline == nil || !t.After(*p.Deadline)
}

// Filter narrows posting lists. Empty fields do not filter.
type Filter struct {
	Kind     Kind
	PostedBy uuid.UUID
	Search   string // title or company, case-insensitive partial match
	Location string // case-insensitive partial match
	WorkMode string
	// SkillVariants are normalized alternatives; a posting matches if it has any of them.
	SkillVariants []string
}

// Repository: storage port for postings. Lists are newest first.
type Repository interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Posting, int, error)
}

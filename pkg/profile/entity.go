package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
)

var ErrNotFound = apperr.NotFound("profile not found")

// Education and Experience are embedded in the student profile and have no identity of their own.
type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Grade        string `json:"grade,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Start       string `json:"start"`
	End         string `json:"end"` // YYYY-MM or "present"
	Description string `json:"description"`
}

type Student struct {
	UserID     uuid.UUID    `json:"userId"`
	FullName   string       `json:"fullName"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	Headline   string       `json:"headline"`
	Bio        string       `json:"bio"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Portfolio  string       `json:"portfolio"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type Company struct {
	UserID      uuid.UUID `json:"userId"`
	CompanyName string    `json:"companyName"`
	Website     string    `json:"website"`
	Industry    string    `json:"industry"`
	Size        string    `json:"size"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logoUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository stores exactly one profile of each kind per user.
type Repository interface {
	UpsertStudent(ctx context.Context, p Student) (Student, error)
	GetStudent(ctx context.Context, userID uuid.UUID) (Student, error)
	UpsertCompany(ctx context.Context, p Company) (Company, error)
	GetCompany(ctx context.Context, userID uuid.UUID) (Company, error)
}

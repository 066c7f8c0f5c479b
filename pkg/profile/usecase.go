package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/nlp"
)

// UseCase covers the upsert/read flows of both profile kinds.
type UseCase interface {
	SaveStudent(ctx context.Context, p Student) (Student, error)
	GetStudent(ctx context.Context, userID uuid.UUID) (Student, error)
	SaveCompany(ctx context.Context, p Company) (Company, error)
	GetCompany(ctx context.Context, userID uuid.UUID) (Company, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) SaveStudent(ctx context.Context, p Student) (Student, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return Student{}, apperr.Validation("invalid profile", map[string]string{"fullName": "full name is required"})
	}
	fields := map[string]string{}
	for i, e := range p.Education {
		if strings.TrimSpace(e.Institution) == "" {
			fields["education"] = "institution is required for every education entry"
			break
		}
		p.Education[i].Institution = strings.TrimSpace(e.Institution)
	}
	for i, e := range p.Experience {
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Role) == "" {
			fields["experience"] = "company and role are required for every experience entry"
			break
		}
		p.Experience[i].Company = strings.TrimSpace(e.Company)
		p.Experience[i].Role = strings.TrimSpace(e.Role)
	}
	if len(fields) > 0 {
		return Student{}, apperr.Validation("invalid profile", fields)
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	p.Skills = nlp.CleanSkills(p.Skills)
	p.UpdatedAt = time.Now().UTC()
	return s.repo.UpsertStudent(ctx, p)
}

func (s *service) GetStudent(ctx context.Context, userID uuid.UUID) (Student, error) {
	return s.repo.GetStudent(ctx, userID)
}

func (s *service) SaveCompany(ctx context.Context, p Company) (Company, error) {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	if p.CompanyName == "" {
		return Company{}, apperr.Validation("invalid profile", map[string]string{"companyName": "company name is required"})
	}
	p.UpdatedAt = time.Now().UTC()
	return s.repo.UpsertCompany(ctx, p)
}

func (s *service) GetCompany(ctx context.Context, userID uuid.UUID) (Company, error) {
	return s.repo.GetCompany(ctx, userID)
}

// Completeness is the share (0..100) of filled student profile sections.
func Completeness(p Student) int {
	checks := []bool{
		p.FullName != "",
		p.Phone != "",
		p.Location != "",
		p.Headline != "" || p.Bio != "",
		len(p.Education) > 0,
		len(p.Experience) > 0,
		len(p.Skills) > 0,
		p.LinkedIn != "" || p.GitHub != "" || p.Portfolio != "",
	}
	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return done * 100 / len(checks)
}

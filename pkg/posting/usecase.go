package posting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/nlp"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/profile"
)

var ErrRecruiterInactive = apperr.Forbidden("recruiter account is not active")

// ListQuery is the caller-facing filter; Skill is expanded to aliases.
type ListQuery struct {
	Kind     Kind
	Search   string
	Location string
	WorkMode string
	Skill    string
}

// UseCase covers publishing and browsing jobs and internships.
type UseCase interface {
	Create(ctx context.Context, recruiterID uuid.UUID, p Posting) (Posting, error)
	Get(ctx context.Context, kind Kind, id uuid.UUID) (Posting, error)
	List(ctx context.Context, q ListQuery, page pagination.Page) (pagination.Result[Posting], error)
	// ListMine lists the recruiter's own postings; an empty kind means both.
	ListMine(ctx context.Context, recruiterID uuid.UUID, kind Kind, page pagination.Page) (pagination.Result[Posting], error)
}

type service struct {
	repo     Repository
	users    auth.UserRepository
	profiles profile.Repository
}

func NewService(repo Repository, users auth.UserRepository, profiles profile.Repository) UseCase {
	return &service{repo: repo, users: users, profiles: profiles}
}

func (s *service) Create(ctx context.Context, recruiterID uuid.UUID, p Posting) (Posting, error) {
	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return Posting{}, err
	}
	if recruiter.Role != auth.RoleRecruiter || recruiter.Status != auth.StatusActive {
		return Posting{}, ErrRecruiterInactive
	}

	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	fields := map[string]string{}
	if p.Kind != KindJob && p.Kind != KindInternship {
		fields["kind"] = "kind must be job or internship"
	}
	if p.Title == "" {
		fields["title"] = "title is required"
	}
	if p.Description == "" {
		fields["description"] = "description is required"
	}
	if p.Openings < 0 {
		fields["openings"] = "openings must not be negative"
	}
	now := time.Now().UTC()
	if p.Deadline != nil && p.Deadline.Before(now) {
		fields["deadline"] = "deadline must be in the future"
	}
	if len(fields) > 0 {
		return Posting{}, apperr.Validation("invalid posting", fields)
	}
	if p.Kind == KindJob {
		p.Duration, p.Stipend = "", ""
	} else {
		p.EmploymentType, p.Salary, p.ExperienceLevel = "", "", ""
	}

	if strings.TrimSpace(p.Company) == "" {
		company, err := s.profiles.GetCompany(ctx, recruiterID)
		switch {
		case err == nil:
			p.Company = company.CompanyName
		case errors.Is(err, profile.ErrNotFound):
			p.Company = recruiter.Name
		default:
			return Posting{}, err
		}
	}
	if p.Openings == 0 {
		p.Openings = 1
	}
	p.ID = uuid.New()
	p.PostedBy = recruiterID
	p.Skills = nlp.CleanSkills(p.Skills)
	p.CreatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return Posting{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, kind Kind, id uuid.UUID) (Posting, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if kind != "" && p.Kind != kind {
		return Posting{}, ErrNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, q ListQuery, page pagination.Page) (pagination.Result[Posting], error) {
	f := Filter{
		Kind:     q.Kind,
		Search:   strings.TrimSpace(q.Search),
		Location: strings.TrimSpace(q.Location),
		WorkMode: strings.TrimSpace(q.WorkMode),
	}
	if strings.TrimSpace(q.Skill) != "" {
		f.SkillVariants = nlp.SkillVariants(q.Skill)
	}
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Result[Posting]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *service) ListMine(ctx context.Context, recruiterID uuid.UUID, kind Kind, page pagination.Page) (pagination.Result[Posting], error) {
	items, total, err := s.repo.List(ctx, Filter{Kind: kind, PostedBy: recruiterID}, page)
	if err != nil {
		return pagination.Result[Posting]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

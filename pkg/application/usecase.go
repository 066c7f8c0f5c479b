package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/resume"
)

const maxCoverLetter = 5000

type ApplyInput struct {
	JobID       uuid.UUID
	ResumeID    *uuid.UUID
	CoverLetter string
}

// UseCase: application lifecycle shared by students and recruiters.
type UseCase interface {
	Apply(ctx context.Context, studentID uuid.UUID, in ApplyInput) (Application, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, id uuid.UUID, status string) (Application, error)
	Withdraw(ctx context.Context, studentID, id uuid.UUID) (Application, error)
	ViewForRecruiter(ctx context.Context, recruiterID, id uuid.UUID) (Application, error)
	GetForStudent(ctx context.Context, studentID, id uuid.UUID) (Application, error)
	ListForRecruiter(ctx context.Context, recruiterID uuid.UUID, f Filter, page pagination.Page) (pagination.Result[Application], error)
	ListForStudent(ctx context.Context, studentID uuid.UUID, status Status, page pagination.Page) (pagination.Result[Application], error)
	StatusCounts(ctx context.Context, studentID uuid.UUID) (map[Status]int, error)
}

type service struct {
	repo     Repository
	postings posting.Repository
	resumes  resume.Repository
	now      func() time.Time
}

func NewService(repo Repository, postings posting.Repository, resumes resume.Repository) UseCase {
	return &service{repo: repo, postings: postings, resumes: resumes, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Apply(ctx context.Context, studentID uuid.UUID, in ApplyInput) (Application, error) {
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	if len(in.CoverLetter) > maxCoverLetter {
		return Application{}, apperr.Validation("invalid application", map[string]string{"coverLetter": "cover letter is too long"})
	}
	p, err := s.postings.GetByID(ctx, in.JobID)
	if err != nil {
		return Application{}, err
	}
	now := s.now()
	if !p.Open(now) {
		return Application{}, ErrPostingClosed
	}

	resumeID := in.ResumeID
	if resumeID != nil {
		if _, err := s.resumes.GetForOwner(ctx, studentID, *resumeID); err != nil {
			return Application{}, err
		}
	} else if def, err := s.resumes.GetDefault(ctx, studentID); err == nil {
		resumeID = &def.ID
	} else if !errors.Is(err, resume.ErrNotFound) {
		return Application{}, err
	}

	a := Application{
		ID:          uuid.New(),
		JobID:       p.ID,
		StudentID:   studentID,
		RecruiterID: p.PostedBy, // always the posting owner, never caller supplied
		ResumeID:    resumeID,
		CoverLetter: in.CoverLetter,
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		JobTitle:    p.Title,
		JobKind:     string(p.Kind),
		Company:     p.Company,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor auth.Identity, id uuid.UUID, status string) (Application, error) {
	to, ok := ParseStatus(status)
	if !ok {
		return Application{}, apperr.Validation("invalid status", map[string]string{"status": "unknown status " + fmt.Sprintf("%q", status)})
	}

	var (
		a   Application
		err error
	)
	switch actor.Role {
	case auth.RoleRecruiter:
		a, err = s.repo.GetForRecruiter(ctx, actor.UserID, id)
	case auth.RoleStudent:
		a, err = s.repo.GetForStudent(ctx, actor.UserID, id)
	default:
		return Application{}, ErrActorNotAllowed
	}
	if err != nil {
		return Application{}, err
	}

	if a.Status == to {
		return a, nil
	}
	if !Settable(actor.Role, to) {
		return Application{}, ErrActorNotAllowed
	}
	if !Allowed(actor.Role, a.Status, to) {
		return Application{}, ErrTransitionNotAllowed
	}
	return s.repo.Transition(ctx, a.ID, a.Status, to, StatusNotification(a, to))
}

func (s *service) Withdraw(ctx context.Context, studentID, id uuid.UUID) (Application, error) {
	return s.UpdateStatus(ctx, auth.Identity{UserID: studentID, Role: auth.RoleStudent}, id, string(StatusWithdrawn))
}

// ViewForRecruiter returns the application and marks a New one as Viewed.
func (s *service) ViewForRecruiter(ctx context.Context, recruiterID, id uuid.UUID) (Application, error) {
	a, err := s.repo.GetForRecruiter(ctx, recruiterID, id)
	if err != nil {
		return Application{}, err
	}
	if a.Status != StatusNew {
		return a, nil
	}
	updated, err := s.repo.Transition(ctx, a.ID, StatusNew, StatusViewed, StatusNotification(a, StatusViewed))
	if errors.Is(err, ErrStale) {
		return s.repo.GetForRecruiter(ctx, recruiterID, id)
	}
	return updated, err
}

func (s *service) GetForStudent(ctx context.Context, studentID, id uuid.UUID) (Application, error) {
	return s.repo.GetForStudent(ctx, studentID, id)
}

func (s *service) ListForRecruiter(ctx context.Context, recruiterID uuid.UUID, f Filter, page pagination.Page) (pagination.Result[Application], error) {
	f.RecruiterID = recruiterID
	f.StudentID = uuid.Nil
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Result[Application]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *service) ListForStudent(ctx context.Context, studentID uuid.UUID, status Status, page pagination.Page) (pagination.Result[Application], error) {
	items, total, err := s.repo.List(ctx, Filter{StudentID: studentID, Status: status}, page)
	if err != nil {
		return pagination.Result[Application]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *service) StatusCounts(ctx context.Context, studentID uuid.UUID) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx, Filter{StudentID: studentID})
}

// StatusNotification builds the student notification for a move of a to `to`.
func StatusNotification(a Application, to Status) notification.Notification {
	job := a.JobTitle
	if job == "" {
		job = "a posting"
	}
	at := ""
	if a.Company != "" {
		at = " at " + a.Company
	}
	var title, message, icon string
	switch to {
	case StatusViewed:
		title, icon = "Application viewed", "eye"
		message = fmt.Sprintf("Your application for %s%s has been viewed by the recruiter.", job, at)
	case StatusShortlisted:
		title, icon = "You have been shortlisted", "star"
		message = fmt.Sprintf("Good news! You were shortlisted for %s%s.", job, at)
	case StatusInterviewScheduled:
		title, icon = "Interview scheduled", "calendar"
		message = fmt.Sprintf("An interview has been scheduled for %s%s. Watch your email for details.", job, at)
	case StatusOfferExtended:
		title, icon = "Offer extended", "gift"
		message = fmt.Sprintf("You received an offer for %s%s.", job, at)
	case StatusOfferAccepted:
		title, icon = "Offer accepted", "check-circle"
		message = fmt.Sprintf("You accepted the offer for %s%s.", job, at)
	case StatusRejected:
		title, icon = "Application update", "x-circle"
		message = fmt.Sprintf("Your application for %s%s was not selected this time.", job, at)
	case StatusWithdrawn:
		title, icon = "Application withdrawn", "undo"
		message = fmt.Sprintf("You withdrew your application for %s%s.", job, at)
	case StatusHired:
		title, icon = "Congratulations, you're hired", "briefcase"
		message = fmt.Sprintf("You have been hired for %s%s.", job, at)
	default:
		title, icon = "Application update", "bell"
		message = fmt.Sprintf("Your application for %s%s is now %s.", job, at, to)
	}
	return notification.Prepare(notification.Notification{
		UserID:  a.StudentID,
		Type:    notification.TypeApplicationStatus,
		Title:   title,
		Message: message,
		Link:    "/student/applications/" + a.ID.String(),
		Icon:    icon,
	})
}

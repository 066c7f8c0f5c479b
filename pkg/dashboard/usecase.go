package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/profile"
	"github.com/artem13815/jobportal/pkg/resume"
)

const recentApplications = 5

// Student is the landing summary of a student account.
type Student struct {
	TotalApplications   int                        `json:"totalApplications"`
	ByStatus            map[application.Status]int `json:"byStatus"`
	Active              int                        `json:"active"`
	UnreadNotifications int                        `json:"unreadNotifications"`
	Recent              []application.Application  `json:"recentApplications"`
	DefaultResume       *resume.Resume             `json:"defaultResume"`
	ResumeCount         int                        `json:"resumeCount"`
	ProfileCompleteness int                        `json:"profileCompleteness"`
}

type UseCase interface {
	ForStudent(ctx context.Context, studentID uuid.UUID) (Student, error)
}

type service struct {
	apps     application.Repository
	notes    notification.Repository
	resumes  resume.Repository
	profiles profile.Repository
}

func NewService(apps application.Repository, notes notification.Repository, resumes resume.Repository, profiles profile.Repository) UseCase {
	return &service{apps: apps, notes: notes, resumes: resumes, profiles: profiles}
}

func (s *service) ForStudent(ctx context.Context, studentID uuid.UUID) (Student, error) {
	counts, err := s.apps.CountByStatus(ctx, application.Filter{StudentID: studentID})
	if err != nil {
		return Student{}, err
	}
	out := Student{ByStatus: map[application.Status]int{}}
	for _, st := range application.Statuses {
		n := counts[st]
		out.ByStatus[st] = n
		out.TotalApplications += n
		if !st.Terminal() {
			out.Active += n
		}
	}

	recent, _, err := s.apps.List(ctx, application.Filter{StudentID: studentID}, pagination.New(1, recentApplications))
	if err != nil {
		return Student{}, err
	}
	if recent == nil {
		recent = []application.Application{}
	}
	out.Recent = recent

	if out.UnreadNotifications, err = s.notes.CountUnread(ctx, studentID); err != nil {
		return Student{}, err
	}

	owned, err := s.resumes.ListByOwner(ctx, studentID)
	if err != nil {
		return Student{}, err
	}
	out.ResumeCount = len(owned)
	for i := range owned {
		if owned[i].IsDefault {
			out.DefaultResume = &owned[i]
			break
		}
	}

	p, err := s.profiles.GetStudent(ctx, studentID)
	switch {
	case err == nil:
		out.ProfileCompleteness = profile.Completeness(p)
	case !errors.Is(err, profile.ErrNotFound):
		return Student{}, err
	}
	return out, nil
}

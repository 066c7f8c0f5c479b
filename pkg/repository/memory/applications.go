package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
)

type ApplicationRepo struct{ s *Store }

func (r *ApplicationRepo) Create(_ context.Context, a application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.applications {
		if it.JobID == a.JobID && it.StudentID == a.StudentID {
			return application.ErrAlreadyApplied
		}
	}
	r.s.applications[a.ID] = a
	return nil
}

func (r *ApplicationRepo) GetForRecruiter(_ context.Context, recruiterID, id uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok || a.RecruiterID != recruiterID {
		return application.Application{}, application.ErrNotFound
	}
	return r.s.joined(a), nil
}

func (r *ApplicationRepo) GetForStudent(_ context.Context, studentID, id uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok || a.StudentID != studentID {
		return application.Application{}, application.ErrNotFound
	}
	return r.s.joined(a), nil
}

func (r *ApplicationRepo) List(_ context.Context, f application.Filter, p pagination.Page) ([]application.Application, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.filterApplications(f)
	newestFirst(out, func(a application.Application) time.Time { return a.CreatedAt }, func(a application.Application) uuid.UUID { return a.ID })
	items, total := paginate(out, p)
	return items, total, nil
}

func (r *ApplicationRepo) Transition(_ context.Context, id uuid.UUID, from, to application.Status, n notification.Notification) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if a.Status != from {
		return application.Application{}, application.ErrStale
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	r.s.applications[id] = a
	r.s.notifications[n.ID] = n
	return r.s.joined(a), nil
}

func (r *ApplicationRepo) CountByStatus(_ context.Context, f application.Filter) (map[application.Status]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[application.Status]int{}
	for _, a := range r.s.filterApplications(f) {
		out[a.Status]++
	}
	return out, nil
}

// filterApplications returns joined rows; callers hold the lock.
func (s *Store) filterApplications(f application.Filter) []application.Application {
	var out []application.Application
	for _, a := range s.applications {
		if f.RecruiterID != uuid.Nil && a.RecruiterID != f.RecruiterID {
			continue
		}
		if f.StudentID != uuid.Nil && a.StudentID != f.StudentID {
			continue
		}
		if f.JobID != uuid.Nil && a.JobID != f.JobID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		a = s.joined(a)
		if f.Search != "" && !containsFold(a.StudentName, f.Search) && !containsFold(a.StudentEmail, f.Search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Store) joined(a application.Application) application.Application {
	if p, ok := s.postings[a.JobID]; ok {
		a.JobTitle, a.JobKind, a.Company = p.Title, string(p.Kind), p.Company
	}
	if u, ok := s.users[a.StudentID]; ok {
		a.StudentName, a.StudentEmail = u.Name, u.Email
	}
	if sp, ok := s.students[a.StudentID]; ok && sp.FullName != "" {
		a.StudentName = sp.FullName
	}
	return a
}

package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
)

type AdminRepo struct{ s *Store }

func (r *AdminRepo) ListUsers(_ context.Context, f admin.UserFilter, p pagination.Page) ([]auth.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []auth.User
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		out = append(out, u)
	}
	newestFirst(out, func(u auth.User) time.Time { return u.CreatedAt }, func(u auth.User) uuid.UUID { return u.ID })
	items, total := paginate(out, p)
	return items, total, nil
}

func (r *AdminRepo) SetUserStatus(_ context.Context, id uuid.UUID, to, expect auth.Status) (auth.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	if expect != "" && u.Status != expect {
		return auth.User{}, admin.ErrStatusMismatch
	}
	u.Status = to
	r.s.users[id] = u
	return u, nil
}

func (r *AdminRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return auth.ErrNotFound
	}
	delete(r.s.users, id)
	delete(r.s.students, id)
	delete(r.s.companies, id)
	for k, v := range r.s.resets {
		if v.UserID == id {
			delete(r.s.resets, k)
		}
	}
	for k, v := range r.s.resumes {
		if v.OwnerID == id {
			delete(r.s.resumes, k)
		}
	}
	for k, v := range r.s.notifications {
		if v.UserID == id {
			delete(r.s.notifications, k)
		}
	}
	removed := map[uuid.UUID]bool{}
	for k, v := range r.s.postings {
		if v.PostedBy == id {
			delete(r.s.postings, k)
			removed[k] = true
		}
	}
	for k, v := range r.s.applications {
		if v.StudentID == id || v.RecruiterID == id || removed[v.JobID] {
			delete(r.s.applications, k)
		}
	}
	return nil
}

func (r *AdminRepo) Overview(_ context.Context, newSince time.Time) (admin.Overview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o := admin.Overview{
		UsersByRole:          map[auth.Role]int{},
		UsersByStatus:        map[auth.Status]int{},
		PostingsByKind:       map[posting.Kind]int{},
		ApplicationsByStatus: map[application.Status]int{},
	}
	for _, u := range r.s.users {
		o.TotalUsers++
		o.UsersByRole[u.Role]++
		o.UsersByStatus[u.Status]++
		if u.Role == auth.RoleRecruiter && u.Status == auth.StatusPendingApproval {
			o.PendingRecruiters++
		}
		if !u.CreatedAt.Before(newSince) {
			o.NewUsersLastWeek++
		}
	}
	for _, p := range r.s.postings {
		o.TotalPostings++
		o.PostingsByKind[p.Kind]++
	}
	for _, a := range r.s.applications {
		o.TotalApplications++
		o.ApplicationsByStatus[a.Status]++
	}
	return o, nil
}

func (r *AdminRepo) Analytics(_ context.Context, w admin.Window, top int) (admin.Analytics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := admin.Analytics{Window: w, ApplicationsByStatus: map[application.Status]int{}, Locations: []string{}}

	regs := map[string]int{}
	for _, u := range r.s.users {
		if w.Contains(u.CreatedAt) {
			regs[u.CreatedAt.UTC().Format(time.DateOnly)]++
		}
	}
	apps := map[string]int{}
	for _, a := range r.s.applications {
		if w.Contains(a.CreatedAt) {
			apps[a.CreatedAt.UTC().Format(time.DateOnly)]++
			out.ApplicationsByStatus[a.Status]++
		}
	}
	out.Registrations = dayCounts(regs)
	out.Applications = dayCounts(apps)

	perRecruiter := map[uuid.UUID]int{}
	locations := map[string]string{}
	for _, p := range r.s.postings {
		if !w.Contains(p.CreatedAt) {
			continue
		}
		perRecruiter[p.PostedBy]++
		if loc := strings.TrimSpace(p.Location); loc != "" {
			if _, ok := locations[strings.ToLower(loc)]; !ok {
				locations[strings.ToLower(loc)] = loc
			}
		}
	}
	for _, loc := range locations {
		out.Locations = append(out.Locations, loc)
	}
	slices.SortFunc(out.Locations, func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) })

	out.TopRecruiters = []admin.RecruiterCount{}
	for id, n := range perRecruiter {
		u := r.s.users[id]
		out.TopRecruiters = append(out.TopRecruiters, admin.RecruiterCount{RecruiterID: id, Name: u.Name, Email: u.Email, Postings: n})
	}
	slices.SortFunc(out.TopRecruiters, func(a, b admin.RecruiterCount) int {
		if a.Postings != b.Postings {
			return b.Postings - a.Postings
		}
		return strings.Compare(a.Email, b.Email)
	})
	if len(out.TopRecruiters) > top {
		out.TopRecruiters = out.TopRecruiters[:top]
	}
	return out, nil
}

func dayCounts(m map[string]int) []admin.DayCount {
	out := make([]admin.DayCount, 0, len(m))
	for d, n := range m {
		out = append(out, admin.DayCount{Day: d, Count: n})
	}
	slices.SortFunc(out, func(a, b admin.DayCount) int { return strings.Compare(a.Day, b.Day) })
	return out
}

func (r *AdminRepo) UsersIn(_ context.Context, w admin.Window) ([]auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []auth.User
	for _, u := range r.s.users {
		if w.Contains(u.CreatedAt) {
			out = append(out, u)
		}
	}
	newestFirst(out, func(u auth.User) time.Time { return u.CreatedAt }, func(u auth.User) uuid.UUID { return u.ID })
	return out, nil
}

func (r *AdminRepo) PostingsIn(_ context.Context, w admin.Window) ([]posting.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []posting.Posting
	for _, p := range r.s.postings {
		if w.Contains(p.CreatedAt) {
			out = append(out, p)
		}
	}
	newestFirst(out, func(p posting.Posting) time.Time { return p.CreatedAt }, func(p posting.Posting) uuid.UUID { return p.ID })
	return out, nil
}

func (r *AdminRepo) ApplicationsIn(_ context.Context, w admin.Window) ([]application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []application.Application
	for _, a := range r.s.applications {
		if w.Contains(a.CreatedAt) {
			out = append(out, r.s.joined(a))
		}
	}
	newestFirst(out, func(a application.Application) time.Time { return a.CreatedAt }, func(a application.Application) uuid.UUID { return a.ID })
	return out, nil
}

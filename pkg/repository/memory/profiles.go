package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/profile"
)

type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) UpsertStudent(_ context.Context, p profile.Student) (profile.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.Skills = cloneStrings(p.Skills)
	p.Education = append([]profile.Education(nil), p.Education...)
	p.Experience = append([]profile.Experience(nil), p.Experience...)
	r.s.students[p.UserID] = p
	return p, nil
}

func (r *ProfileRepo) GetStudent(_ context.Context, userID uuid.UUID) (profile.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.students[userID]
	if !ok {
		return profile.Student{}, profile.ErrNotFound
	}
	return p, nil
}

func (r *ProfileRepo) UpsertCompany(_ context.Context, p profile.Company) (profile.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[p.UserID] = p
	return p, nil
}

func (r *ProfileRepo) GetCompany(_ context.Context, userID uuid.UUID) (profile.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.companies[userID]
	if !ok {
		return profile.Company{}, profile.ErrNotFound
	}
	return p, nil
}

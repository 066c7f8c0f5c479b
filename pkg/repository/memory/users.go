package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/auth"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return auth.ErrUserAlreadyExists
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type ResetRepo struct{ s *Store }

func (r *ResetRepo) CreateReset(_ context.Context, pr auth.PasswordReset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.resets[pr.ID] = pr
	return nil
}

func (r *ResetRepo) GetReset(_ context.Context, id uuid.UUID) (auth.PasswordReset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	pr, ok := r.s.resets[id]
	if !ok {
		return auth.PasswordReset{}, auth.ErrResetNotFound
	}
	return pr, nil
}

func (r *ResetRepo) ConsumeReset(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr, ok := r.s.resets[id]
	if !ok || pr.UsedAt != nil {
		return auth.ErrInvalidResetToken
	}
	u, ok := r.s.users[pr.UserID]
	if !ok {
		return auth.ErrNotFound
	}
	now := time.Now().UTC()
	pr.UsedAt = &now
	r.s.resets[id] = pr
	u.PasswordHash = passwordHash
	r.s.users[u.ID] = u
	return nil
}

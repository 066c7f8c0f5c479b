package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/resume"
)

type ResumeRepo struct{ s *Store }

func (r *ResumeRepo) Create(_ context.Context, res resume.Resume) (resume.Resume, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res.IsDefault = true
	for _, it := range r.s.resumes {
		if it.OwnerID == res.OwnerID && it.IsDefault {
			res.IsDefault = false
			break
		}
	}
	r.s.resumes[res.ID] = res
	return res, nil
}

func (r *ResumeRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.resumes[id]
	if !ok || res.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	return res, nil
}

func (r *ResumeRepo) GetDefault(_ context.Context, ownerID uuid.UUID) (resume.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.resumes {
		if it.OwnerID == ownerID && it.IsDefault {
			return it, nil
		}
	}
	return resume.Resume{}, resume.ErrNotFound
}

func (r *ResumeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]resume.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.ownedResumes(ownerID), nil
}

func (s *Store) ownedResumes(ownerID uuid.UUID) []resume.Resume {
	out := []resume.Resume{}
	for _, it := range s.resumes {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	newestFirst(out, func(r resume.Resume) time.Time { return r.CreatedAt }, func(r resume.Resume) uuid.UUID { return r.ID })
	return out
}

func (r *ResumeRepo) SetDefault(_ context.Context, ownerID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if res, ok := r.s.resumes[id]; !ok || res.OwnerID != ownerID {
		return resume.ErrNotFound
	}
	for rid, it := range r.s.resumes {
		if it.OwnerID != ownerID {
			continue
		}
		it.IsDefault = rid == id
		r.s.resumes[rid] = it
	}
	return nil
}

func (r *ResumeRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resumes[id]
	if !ok || res.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	delete(r.s.resumes, id)
	if res.IsDefault {
		if rest := r.s.ownedResumes(ownerID); len(rest) > 0 {
			next := rest[0]
			next.IsDefault = true
			r.s.resumes[next.ID] = next
		}
	}
	return res, nil
}

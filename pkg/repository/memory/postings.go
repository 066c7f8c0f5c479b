package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/nlp"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
)

type PostingRepo struct{ s *Store }

func (r *PostingRepo) Create(_ context.Context, p posting.Posting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.Skills = cloneStrings(p.Skills)
	r.s.postings[p.ID] = p
	return nil
}

func (r *PostingRepo) GetByID(_ context.Context, id uuid.UUID) (posting.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.postings[id]
	if !ok {
		return posting.Posting{}, posting.ErrNotFound
	}
	return p, nil
}

func (r *PostingRepo) List(_ context.Context, f posting.Filter, p pagination.Page) ([]posting.Posting, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []posting.Posting
	for _, it := range r.s.postings {
		if matchPosting(it, f) {
			out = append(out, it)
		}
	}
	newestFirst(out, func(p posting.Posting) time.Time { return p.CreatedAt }, func(p posting.Posting) uuid.UUID { return p.ID })
	items, total := paginate(out, p)
	return items, total, nil
}

func matchPosting(p posting.Posting, f posting.Filter) bool {
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	if f.PostedBy != uuid.Nil && p.PostedBy != f.PostedBy {
		return false
	}
	if f.Search != "" && !containsFold(p.Title, f.Search) && !containsFold(p.Company, f.Search) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.WorkMode != "" && !strings.EqualFold(p.WorkMode, f.WorkMode) {
		return false
	}
	if len(f.SkillVariants) > 0 {
		hit := false
		for _, sk := range p.Skills {
			if slices.Contains(f.SkillVariants, nlp.NormalizeSkill(sk)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

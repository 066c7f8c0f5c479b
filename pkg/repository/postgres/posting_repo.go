package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/nlp"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
)

// PostingRepository stores jobs and internships in one table. skill_keys keeps
// normalized skills for the GIN-backed overlap filter.
type PostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

const postingColumns = `p.id, p.kind, p.posted_by, p.title, p.description, p.company, p.location, p.work_mode,
	p.skills, p.openings, p.deadline, p.employment_type, p.salary, p.experience_level, p.duration, p.stipend, p.created_at`

func scanPosting(row rowScanner) (posting.Posting, error) {
	var p posting.Posting
	err := row.Scan(&p.ID, &p.Kind, &p.PostedBy, &p.Title, &p.Description, &p.Company, &p.Location, &p.WorkMode,
		&p.Skills, &p.Openings, &p.Deadline, &p.EmploymentType, &p.Salary, &p.ExperienceLevel, &p.Duration, &p.Stipend, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return posting.Posting{}, posting.ErrNotFound
	}
	if err != nil {
		return posting.Posting{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if p.Deadline != nil {
		d := p.Deadline.UTC()
		p.Deadline = &d
	}
	return p, nil
}

func skillKeys(skills []string) []string {
	keys := make([]string, 0, len(skills))
	for _, s := range skills {
		if k := nlp.NormalizeSkill(s); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO postings (id, kind, posted_by, title, description, company, location, work_mode, skills, skill_keys,
			openings, deadline, employment_type, salary, experience_level, duration, stipend, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, p.ID, p.Kind, p.PostedBy, p.Title, p.Description, p.Company, p.Location, p.WorkMode, emptyIfNil(p.Skills), skillKeys(p.Skills),
		p.Openings, p.Deadline, p.EmploymentType, p.Salary, p.ExperienceLevel, p.Duration, p.Stipend, p.CreatedAt)
	return err
}

func (r *PostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	return scanPosting(r.pool.QueryRow(ctx, `SELECT `+postingColumns+` FROM postings p WHERE p.id = $1`, id))
}

func (r *PostingRepository) List(ctx context.Context, f posting.Filter, page pagination.Page) ([]posting.Posting, int, error) {
	var w where
	if f.Kind != "" {
		w.add("p.kind = ?", f.Kind)
	}
	if f.PostedBy != uuid.Nil {
		w.add("p.posted_by = ?", f.PostedBy)
	}
	if f.Search != "" {
		w.add(`(p.title ILIKE ? ESCAPE '\' OR p.company ILIKE ? ESCAPE '\')`, pagination.LikePattern(f.Search))
	}
	if f.Location != "" {
		w.add(`p.location ILIKE ? ESCAPE '\'`, pagination.LikePattern(f.Location))
	}
	if f.WorkMode != "" {
		w.add("lower(p.work_mode) = lower(?)", f.WorkMode)
	}
	if len(f.SkillVariants) > 0 {
		w.add("p.skill_keys && ?", f.SkillVariants)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM postings p`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, args := w.page(page.Limit, page.Offset())
	rows, err := r.pool.Query(ctx, `SELECT `+postingColumns+` FROM postings p`+w.String()+` ORDER BY p.created_at DESC, p.id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []posting.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

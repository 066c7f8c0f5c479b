package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationSelect = `
	SELECT a.id, a.job_id, a.student_id, a.recruiter_id, a.resume_id, a.cover_letter, a.status, a.created_at, a.updated_at,
		p.title, p.kind, p.company, COALESCE(NULLIF(sp.full_name, ''), u.name), u.email
	FROM applications a
	JOIN postings p ON p.id = a.job_id
	JOIN users u ON u.id = a.student_id
	LEFT JOIN student_profiles sp ON sp.user_id = a.student_id`

const applicationFrom = `
	FROM applications a
	JOIN users u ON u.id = a.student_id
	LEFT JOIN student_profiles sp ON sp.user_id = a.student_id`

func scanApplication(row rowScanner) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.JobID, &a.StudentID, &a.RecruiterID, &a.ResumeID, &a.CoverLetter, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.JobKind, &a.Company, &a.StudentName, &a.StudentEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return application.Application{}, application.ErrNotFound
	}
	a.CreatedAt, a.UpdatedAt = a.CreatedAt.UTC(), a.UpdatedAt.UTC()
	return a, err
}

func applicationWhere(f application.Filter) *where {
	w := &where{}
	if f.RecruiterID != uuid.Nil {
		w.add("a.recruiter_id = ?", f.RecruiterID)
	}
	if f.StudentID != uuid.Nil {
		w.add("a.student_id = ?", f.StudentID)
	}
	if f.JobID != uuid.Nil {
		w.add("a.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		w.add("a.status = ?", f.Status)
	}
	if f.Search != "" {
		w.add(`(COALESCE(NULLIF(sp.full_name, ''), u.name) ILIKE ? ESCAPE '\' OR u.email ILIKE ? ESCAPE '\')`, pagination.LikePattern(f.Search))
	}
	return w
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO applications (id, job_id, student_id, recruiter_id, resume_id, cover_letter, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.JobID, a.StudentID, a.RecruiterID, a.ResumeID, a.CoverLetter, a.Status, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return application.ErrAlreadyApplied
	}
	return err
}

func (r *ApplicationRepository) GetForRecruiter(ctx context.Context, recruiterID, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1 AND a.recruiter_id = $2`, id, recruiterID))
}

func (r *ApplicationRepository) GetForStudent(ctx context.Context, studentID, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1 AND a.student_id = $2`, id, studentID))
}

func (r *ApplicationRepository) List(ctx context.Context, f application.Filter, page pagination.Page) ([]application.Application, int, error) {
	w := applicationWhere(f)
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*)`+applicationFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, args := w.page(page.Limit, page.Offset())
	rows, err := r.pool.Query(ctx, applicationSelect+w.String()+` ORDER BY a.created_at DESC, a.id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []application.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// Transition is a compare-and-set on status plus the notification insert, in one transaction.
func (r *ApplicationRepository) Transition(ctx context.Context, id uuid.UUID, from, to application.Status, n notification.Notification) (application.Application, error) {
	var out application.Application
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE applications SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`, id, from, to, time.Now().UTC())
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return application.ErrNotFound
			}
			return application.ErrStale
		}
		if err := insertNotification(ctx, tx, n); err != nil {
			return err
		}
		out, err = scanApplication(tx.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
		return err
	})
	if err != nil {
		return application.Application{}, err
	}
	return out, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, f application.Filter) (map[application.Status]int, error) {
	w := applicationWhere(f)
	rows, err := r.pool.Query(ctx, `SELECT a.status, count(*)`+applicationFrom+w.String()+` GROUP BY a.status`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[application.Status]int{}
	for rows.Next() {
		var (
			st application.Status
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}

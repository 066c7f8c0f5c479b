package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
)

// AdminRepository serves user management and aggregate queries.
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) ListUsers(ctx context.Context, f admin.UserFilter, page pagination.Page) ([]auth.User, int, error) {
	var w where
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Search != "" {
		w.add(`(name ILIKE ? ESCAPE '\' OR email ILIKE ? ESCAPE '\')`, pagination.LikePattern(f.Search))
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, args := w.page(page.Limit, page.Offset())
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	users, err := collectUsers(rows)
	return users, total, err
}

func collectUsers(rows pgx.Rows) ([]auth.User, error) {
	defer rows.Close()
	out := []auth.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *AdminRepository) SetUserStatus(ctx context.Context, id uuid.UUID, to, expect auth.Status) (auth.User, error) {
	sql := `UPDATE users SET status = $2 WHERE id = $1`
	args := []any{id, to}
	if expect != "" {
		sql += ` AND status = $3`
		args = append(args, expect)
	}
	u, err := scanUser(r.pool.QueryRow(ctx, sql+` RETURNING `+userColumns, args...))
	if errors.Is(err, auth.ErrNotFound) && expect != "" {
		var exists bool
		if qerr := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); qerr == nil && exists {
			return auth.User{}, admin.ErrStatusMismatch
		}
	}
	return u, err
}

// DeleteUser relies on ON DELETE CASCADE for profiles, resumes, postings, applications and notifications.
func (r *AdminRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) Overview(ctx context.Context, newSince time.Time) (admin.Overview, error) {
	o := admin.Overview{
		UsersByRole:          map[auth.Role]int{},
		UsersByStatus:        map[auth.Status]int{},
		PostingsByKind:       map[posting.Kind]int{},
		ApplicationsByStatus: map[application.Status]int{},
	}
	rows, err := r.pool.Query(ctx, `SELECT role, status, count(*) FROM users GROUP BY role, status`)
	if err != nil {
		return admin.Overview{}, err
	}
	err = forEach(rows, func(row pgx.Rows) error {
		var (
			role   auth.Role
			status auth.Status
			n      int
		)
		if err := row.Scan(&role, &status, &n); err != nil {
			return err
		}
		o.TotalUsers += n
		o.UsersByRole[role] += n
		o.UsersByStatus[status] += n
		if role == auth.RoleRecruiter && status == auth.StatusPendingApproval {
			o.PendingRecruiters += n
		}
		return nil
	})
	if err != nil {
		return admin.Overview{}, err
	}

	if rows, err = r.pool.Query(ctx, `SELECT kind, count(*) FROM postings GROUP BY kind`); err != nil {
		return admin.Overview{}, err
	}
	err = forEach(rows, func(row pgx.Rows) error {
		var (
			kind posting.Kind
			n    int
		)
		if err := row.Scan(&kind, &n); err != nil {
			return err
		}
		o.TotalPostings += n
		o.PostingsByKind[kind] = n
		return nil
	})
	if err != nil {
		return admin.Overview{}, err
	}

	if o.ApplicationsByStatus, err = r.applicationsByStatus(ctx, time.Time{}, time.Time{}); err != nil {
		return admin.Overview{}, err
	}
	for _, n := range o.ApplicationsByStatus {
		o.TotalApplications += n
	}

	err = r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE created_at >= $1`, newSince).Scan(&o.NewUsersLastWeek)
	return o, err
}

// applicationsByStatus counts all applications, or only those in [from, to) when to is set.
func (r *AdminRepository) applicationsByStatus(ctx context.Context, from, to time.Time) (map[application.Status]int, error) {
	sql := `SELECT status, count(*) FROM applications`
	var args []any
	if !to.IsZero() {
		sql += ` WHERE created_at >= $1 AND created_at < $2`
		args = append(args, from, to)
	}
	rows, err := r.pool.Query(ctx, sql+` GROUP BY status`, args...)
	if err != nil {
		return nil, err
	}
	out := map[application.Status]int{}
	err = forEach(rows, func(row pgx.Rows) error {
		var (
			st application.Status
			n  int
		)
		if err := row.Scan(&st, &n); err != nil {
			return err
		}
		out[st] = n
		return nil
	})
	return out, err
}

func (r *AdminRepository) perDay(ctx context.Context, table string, w admin.Window) ([]admin.DayCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, count(*)
		FROM `+table+` WHERE created_at >= $1 AND created_at < $2
		GROUP BY day ORDER BY day`, w.From, w.To)
	if err != nil {
		return nil, err
	}
	out := []admin.DayCount{}
	err = forEach(rows, func(row pgx.Rows) error {
		var d admin.DayCount
		if err := row.Scan(&d.Day, &d.Count); err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	return out, err
}

func (r *AdminRepository) Analytics(ctx context.Context, w admin.Window, top int) (admin.Analytics, error) {
	out := admin.Analytics{Window: w}
	var err error
	if out.Registrations, err = r.perDay(ctx, "users", w); err != nil {
		return admin.Analytics{}, err
	}
	if out.Applications, err = r.perDay(ctx, "applications", w); err != nil {
		return admin.Analytics{}, err
	}
	if out.ApplicationsByStatus, err = r.applicationsByStatus(ctx, w.From, w.To); err != nil {
		return admin.Analytics{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, count(*) AS n
		FROM postings p JOIN users u ON u.id = p.posted_by
		WHERE p.created_at >= $1 AND p.created_at < $2
		GROUP BY u.id, u.name, u.email
		ORDER BY n DESC, u.email
		LIMIT $3`, w.From, w.To, top)
	if err != nil {
		return admin.Analytics{}, err
	}
	out.TopRecruiters = []admin.RecruiterCount{}
	err = forEach(rows, func(row pgx.Rows) error {
		var rc admin.RecruiterCount
		if err := row.Scan(&rc.RecruiterID, &rc.Name, &rc.Email, &rc.Postings); err != nil {
			return err
		}
		out.TopRecruiters = append(out.TopRecruiters, rc)
		return nil
	})
	if err != nil {
		return admin.Analytics{}, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT DISTINCT ON (lower(btrim(location))) btrim(location)
		FROM postings
		WHERE created_at >= $1 AND created_at < $2 AND btrim(location) <> ''
		ORDER BY lower(btrim(location)), btrim(location)`, w.From, w.To)
	if err != nil {
		return admin.Analytics{}, err
	}
	out.Locations = []string{}
	err = forEach(rows, func(row pgx.Rows) error {
		var loc string
		if err := row.Scan(&loc); err != nil {
			return err
		}
		out.Locations = append(out.Locations, loc)
		return nil
	})
	return out, err
}

func (r *AdminRepository) UsersIn(ctx context.Context, w admin.Window) ([]auth.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC, id DESC`, w.From, w.To)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *AdminRepository) PostingsIn(ctx context.Context, w admin.Window) ([]posting.Posting, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postingColumns+` FROM postings p WHERE p.created_at >= $1 AND p.created_at < $2 ORDER BY p.created_at DESC, p.id DESC`, w.From, w.To)
	if err != nil {
		return nil, err
	}
	out := []posting.Posting{}
	err = forEach(rows, func(row pgx.Rows) error {
		p, err := scanPosting(row)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func (r *AdminRepository) ApplicationsIn(ctx context.Context, w admin.Window) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, applicationSelect+` WHERE a.created_at >= $1 AND a.created_at < $2 ORDER BY a.created_at DESC, a.id DESC`, w.From, w.To)
	if err != nil {
		return nil, err
	}
	out := []application.Application{}
	err = forEach(rows, func(row pgx.Rows) error {
		a, err := scanApplication(row)
		if err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

// forEach drains rows and closes them.
func forEach(rows pgx.Rows, fn func(pgx.Rows) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

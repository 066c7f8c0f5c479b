package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/resume"
)

// ResumeRepository stores resume metadata. Default changes run in transactions
// holding the owner's users row lock; the resumes_one_default partial index
// rejects a second default.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

const resumeColumns = `id, owner_id, filename, mime_type, size, storage_key, url, is_default, created_at`

func scanResume(row rowScanner) (resume.Resume, error) {
	var r resume.Resume
	err := row.Scan(&r.ID, &r.OwnerID, &r.Filename, &r.MimeType, &r.Size, &r.StorageKey, &r.URL, &r.IsDefault, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.Resume{}, resume.ErrNotFound
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, err
}

// lockOwner serializes default changes of one owner. The users row exists even
// before the first upload, unlike any resumes row.
func lockOwner(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, ownerID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.ErrNotFound
	}
	return err
}

func defaultConflict(err error) error {
	if isUniqueViolation(err) {
		return resume.ErrDefaultConflict
	}
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) (resume.Resume, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, rs.OwnerID); err != nil {
			return err
		}
		var hasDefault bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resumes WHERE owner_id = $1 AND is_default)`, rs.OwnerID).Scan(&hasDefault); err != nil {
			return err
		}
		rs.IsDefault = !hasDefault
		_, err := tx.Exec(ctx, `
			INSERT INTO resumes (id, owner_id, filename, mime_type, size, storage_key, url, is_default, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, rs.ID, rs.OwnerID, rs.Filename, rs.MimeType, rs.Size, rs.StorageKey, rs.URL, rs.IsDefault, rs.CreatedAt)
		return err
	})
	if err != nil {
		return resume.Resume{}, defaultConflict(err)
	}
	return rs, nil
}

func (r *ResumeRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanResume(r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *ResumeRepository) GetDefault(ctx context.Context, ownerID uuid.UUID) (resume.Resume, error) {
	return scanResume(r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 AND is_default LIMIT 1`, ownerID))
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []resume.Resume{}
	for rows.Next() {
		rs, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) SetDefault(ctx context.Context, ownerID, id uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, ownerID); err != nil {
			return err
		}
		var owned bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resumes WHERE id = $1 AND owner_id = $2)`, id, ownerID).Scan(&owned); err != nil {
			return err
		}
		if !owned {
			return resume.ErrNotFound
		}
		// clear first: the unique index is checked row by row
		if _, err := tx.Exec(ctx, `UPDATE resumes SET is_default = FALSE WHERE owner_id = $1 AND is_default AND id <> $2`, ownerID, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE resumes SET is_default = TRUE WHERE id = $1 AND owner_id = $2`, id, ownerID)
		return err
	})
	return defaultConflict(err)
}

func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	var deleted resume.Resume
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, ownerID); err != nil {
			return err
		}
		var err error
		deleted, err = scanResume(tx.QueryRow(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2 RETURNING `+resumeColumns, id, ownerID))
		if err != nil {
			return err
		}
		if !deleted.IsDefault {
			return nil
		}
		_, err = tx.Exec(ctx, `
			UPDATE resumes SET is_default = TRUE
			WHERE id = (SELECT id FROM resumes WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1)
		`, ownerID)
		return err
	})
	if err != nil {
		return resume.Resume{}, defaultConflict(err)
	}
	return deleted, nil
}

package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/auth"
)

// UserRepository implements auth.UserRepository and auth.ResetRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, status, name, created_at`

func scanUser(row rowScanner) (auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Name, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, status, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.Status, user.Name, user.CreatedAt)
	if isUniqueViolation(err) {
		return auth.ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) CreateReset(ctx context.Context, pr auth.PasswordReset) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO password_resets (id, user_id, secret_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pr.ID, pr.UserID, pr.SecretHash, pr.ExpiresAt, pr.CreatedAt)
	return err
}

func (r *UserRepository) GetReset(ctx context.Context, id uuid.UUID) (auth.PasswordReset, error) {
	var pr auth.PasswordReset
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, secret_hash, expires_at, used_at, created_at
		FROM password_resets WHERE id = $1
	`, id).Scan(&pr.ID, &pr.UserID, &pr.SecretHash, &pr.ExpiresAt, &pr.UsedAt, &pr.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.PasswordReset{}, auth.ErrResetNotFound
	}
	return pr, err
}

// ConsumeReset claims the grant with a conditional update, so concurrent
// resets consume it once, and changes the password in the same transaction.
func (r *UserRepository) ConsumeReset(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var userID uuid.UUID
		err := tx.QueryRow(ctx, `
			UPDATE password_resets SET used_at = now()
			WHERE id = $1 AND used_at IS NULL
			RETURNING user_id
		`, id).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return auth.ErrNotFound
		}
		return nil
	})
}

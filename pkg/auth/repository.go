package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = apperr.NotFound("user not found")
	ErrUserAlreadyExists  = apperr.Conflict("user already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "invalid email, password or role")
	ErrAccountPending     = apperr.Forbidden("account is pending approval")
	ErrAccountDisabled    = apperr.Forbidden("account is not active")
	ErrInvalidResetToken  = apperr.Validation("invalid or expired reset token", nil)
	ErrResetNotFound      = apperr.NotFound("password reset not found")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Email lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

// ResetRepository stores password reset grants.
type ResetRepository interface {
	CreateReset(ctx context.Context, r PasswordReset) error
	GetReset(ctx context.Context, id uuid.UUID) (PasswordReset, error)
	// ConsumeReset marks an unused grant as used and stores the new password
	// hash of its user in one transaction. A used or missing grant answers
	// ErrInvalidResetToken; on any failure the grant stays usable.
	ConsumeReset(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TokenGenerator abstracts token creation (e.g., JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// Mailer delivers password reset tokens. Content templating is up to the implementation.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/jobportal/pkg/apperr"
)

const minPasswordLen = 6

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string, role Role) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Me(ctx context.Context, id uuid.UUID) (User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo     UserRepository
	resets   ResetRepository
	tokens   TokenGenerator
	mailer   Mailer
	resetTTL time.Duration
	log      *slog.Logger
	// compared against when the email is unknown so both paths cost a bcrypt round
	dummyHash []byte
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, resets ResetRepository, tokens TokenGenerator, mailer Mailer, resetTTL time.Duration, log *slog.Logger) AuthUseCase {
	if log == nil {
		log = slog.Default()
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	return &authService{repo: repo, resets: resets, tokens: tokens, mailer: mailer, resetTTL: resetTTL, log: log, dummyHash: dummy}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "email is malformed"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	} else if len(in.Password) < minPasswordLen {
		fields["password"] = "password must be at least 6 characters"
	}
	role, ok := ParseRole(in.Role)
	if !ok || role == RoleAdmin {
		fields["role"] = "role must be student or recruiter"
	}
	if len(fields) > 0 {
		return AuthResult{}, apperr.Validation("invalid registration payload", fields)
	}

	// If user exists, fail fast (best-effort check; the unique index decides)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	status := StatusActive
	if role == RoleRecruiter {
		status = StatusPendingApproval
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		Status:       status,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	if user.Status != StatusActive {
		return AuthResult{User: user}, nil
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string, role Role) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return AuthResult{}, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if user.Role != role {
		return AuthResult{}, ErrInvalidCredentials
	}
	switch user.Status {
	case StatusActive:
	case StatusPendingApproval:
		return AuthResult{}, ErrAccountPending
	default:
		return AuthResult{}, ErrAccountDisabled
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// ForgotPassword never tells the caller whether the account exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	secret, err := randomSecret()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	reset := PasswordReset{
		ID:         uuid.New(),
		UserID:     user.ID,
		SecretHash: string(hash),
		ExpiresAt:  now.Add(s.resetTTL),
		CreatedAt:  now,
	}
	if err := s.resets.CreateReset(ctx, reset); err != nil {
		return err
	}
	token := reset.ID.String() + "." + secret
	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
			s.log.Error("send password reset", slog.String("user_id", user.ID.String()), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return apperr.Validation("invalid password", map[string]string{"password": "password must be at least 6 characters"})
	}
	idPart, secret, ok := strings.Cut(strings.TrimSpace(token), ".")
	if !ok || secret == "" {
		return ErrInvalidResetToken
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return ErrInvalidResetToken
	}
	reset, err := s.resets.GetReset(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if reset.UsedAt != nil || time.Now().UTC().After(reset.ExpiresAt) {
		return ErrInvalidResetToken
	}
	if bcrypt.CompareHashAndPassword([]byte(reset.SecretHash), []byte(secret)) != nil {
		return ErrInvalidResetToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.resets.ConsumeReset(ctx, id, string(hash)); err != nil {
		if errors.Is(err, ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	s.log.Info("password reset", slog.String("user_id", reset.UserID.String()))
	return nil
}

func (s *authService) Me(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		Status:       StatusActive,
		Name:         "Administrator",
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, ErrUserAlreadyExists) {
		return nil
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomSecret() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

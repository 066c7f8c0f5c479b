package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/repository/memory"
	"github.com/artem13815/jobportal/pkg/security/jwt"
)

type outbox struct{ tokens map[string]string }

func (o *outbox) SendPasswordReset(_ context.Context, to, token string) error {
	o.tokens[to] = token
	return nil
}

func newService(t *testing.T) (auth.AuthUseCase, *outbox) {
	t.Helper()
	store := memory.New()
	mail := &outbox{tokens: map[string]string{}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.NewAuthService(store.Users(), store.Resets(), jwt.NewGenerator("secret", "test", time.Hour), mail, time.Hour, log)
	return svc, mail
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), auth.RegisterInput{Email: "not-an-email", Password: "123", Role: "admin"})
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "email")
	assert.Contains(t, ae.Fields, "password")
	assert.Contains(t, ae.Fields, "role")
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, auth.RegisterInput{Email: " Ann@X.com ", Password: "secret1", Role: "Student"})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", res.User.Email)
	assert.Equal(t, "ann", res.User.Name)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Register(ctx, auth.RegisterInput{Email: "ann@x.com", Password: "secret1", Role: "student"})
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	got, err := svc.Login(ctx, "ANN@x.com", "secret1", auth.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)

	_, err = svc.Login(ctx, "ann@x.com", "secret1", auth.RoleRecruiter)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ann@x.com", "wrong", auth.RoleStudent)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@x.com", "secret1", auth.RoleStudent)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRecruiterStartsPending(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, auth.RegisterInput{Email: "r@corp.com", Password: "secret1", Role: "recruiter", Name: "Rita"})
	require.NoError(t, err)
	assert.Empty(t, res.Token)
	assert.Equal(t, auth.StatusPendingApproval, res.User.Status)

	_, err = svc.Login(ctx, "r@corp.com", "secret1", auth.RoleRecruiter)
	assert.ErrorIs(t, err, auth.ErrAccountPending)
}

func TestPasswordResetIsSingleUse(t *testing.T) {
	svc, mail := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, auth.RegisterInput{Email: "ann@x.com", Password: "secret1", Role: "student"})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "nobody@x.com"))
	assert.Empty(t, mail.tokens)

	require.NoError(t, svc.ForgotPassword(ctx, "Ann@x.com"))
	token := mail.tokens["ann@x.com"]
	require.NotEmpty(t, token)

	assert.ErrorIs(t, svc.ResetPassword(ctx, token+"x", "newpass1"), auth.ErrInvalidResetToken)
	require.NoError(t, svc.ResetPassword(ctx, token, "newpass1"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another1"), auth.ErrInvalidResetToken)

	_, err = svc.Login(ctx, "ann@x.com", "secret1", auth.RoleStudent)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ann@x.com", "newpass1", auth.RoleStudent)
	assert.NoError(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "root@portal.test", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "ROOT@portal.test", "other"))

	res, err := svc.Login(ctx, "root@portal.test", "rootpass", auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, res.User.Role)
}

type flakyResets struct {
	auth.ResetRepository
	failures int
}

func (f *flakyResets) ConsumeReset(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("connection reset")
	}
	return f.ResetRepository.ConsumeReset(ctx, id, passwordHash)
}

func TestFailedResetKeepsTokenUsable(t *testing.T) {
	store := memory.New()
	mail := &outbox{tokens: map[string]string{}}
	resets := &flakyResets{ResetRepository: store.Resets(), failures: 1}
	svc := auth.NewAuthService(store.Users(), resets, jwt.NewGenerator("secret", "test", time.Hour), mail, time.Hour, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Email: "ann@x.com", Password: "secret1", Role: "student"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "ann@x.com"))
	token := mail.tokens["ann@x.com"]

	require.Error(t, svc.ResetPassword(ctx, token, "newpass1"))
	_, err = svc.Login(ctx, "ann@x.com", "secret1", auth.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, token, "newpass1"))
	_, err = svc.Login(ctx, "ann@x.com", "newpass1", auth.RoleStudent)
	assert.NoError(t, err)
}

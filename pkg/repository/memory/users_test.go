package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/repository/memory"
)

func TestConsumeResetIsAllOrNothing(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()
	grant := auth.PasswordReset{ID: uuid.New(), UserID: userID, SecretHash: "h", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, store.Resets().CreateReset(ctx, grant))

	// the user row is missing, so the password cannot change
	assert.ErrorIs(t, store.Resets().ConsumeReset(ctx, grant.ID, "new-hash"), auth.ErrNotFound)
	got, err := store.Resets().GetReset(ctx, grant.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UsedAt)

	require.NoError(t, store.Users().Create(ctx, auth.User{
		ID: userID, Email: "ann@x.com", PasswordHash: "old-hash", Role: auth.RoleStudent, Status: auth.StatusActive, CreatedAt: now,
	}))
	require.NoError(t, store.Resets().ConsumeReset(ctx, grant.ID, "new-hash"))
	u, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.PasswordHash)

	got, err = store.Resets().GetReset(ctx, grant.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.UsedAt)
	assert.ErrorIs(t, store.Resets().ConsumeReset(ctx, grant.ID, "other"), auth.ErrInvalidResetToken)
}

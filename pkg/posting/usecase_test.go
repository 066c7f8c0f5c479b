package posting_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/profile"
	"github.com/artem13815/jobportal/pkg/repository/memory"
)

func setup(t *testing.T, st auth.Status) (posting.UseCase, *memory.Store, uuid.UUID) {
	t.Helper()
	store := memory.New()
	rec := uuid.New()
	require.NoError(t, store.Users().Create(context.Background(), auth.User{
		ID: rec, Email: "r@corp.com", Name: "Rita", Role: auth.RoleRecruiter, Status: st, CreatedAt: time.Now(),
	}))
	return posting.NewService(store.Postings(), store.Users(), store.Profiles()), store, rec
}

func TestCreateRequiresActiveRecruiter(t *testing.T) {
	svc, _, rec := setup(t, auth.StatusPendingApproval)
	_, err := svc.Create(context.Background(), rec, posting.Posting{Kind: posting.KindJob, Title: "t", Description: "d"})
	assert.ErrorIs(t, err, posting.ErrRecruiterInactive)
}

func TestCreateValidatesAndDefaults(t *testing.T) {
	svc, store, rec := setup(t, auth.StatusActive)
	ctx := context.Background()

	_, err := svc.Create(ctx, rec, posting.Posting{Kind: posting.KindJob})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "title")
	assert.Contains(t, ae.Fields, "description")

	p, err := svc.Create(ctx, rec, posting.Posting{Kind: posting.KindInternship, Title: " Intern ", Description: "d", Salary: "100", Stipend: "50"})
	require.NoError(t, err)
	assert.Equal(t, "Intern", p.Title)
	assert.Equal(t, "Rita", p.Company)
	assert.Equal(t, 1, p.Openings)
	assert.Empty(t, p.Salary)
	assert.Equal(t, "50", p.Stipend)

	_, err = store.Profiles().UpsertCompany(ctx, profile.Company{UserID: rec, CompanyName: "Acme"})
	require.NoError(t, err)
	p, err = svc.Create(ctx, rec, posting.Posting{Kind: posting.KindJob, Title: "Dev", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Company)

	_, err = svc.Get(ctx, posting.KindInternship, p.ID)
	assert.ErrorIs(t, err, posting.ErrNotFound)
}

func TestListMatchesSkillAliases(t *testing.T) {
	svc, _, rec := setup(t, auth.StatusActive)
	ctx := context.Background()
	for _, sk := range [][]string{{"Go", "PostgreSQL"}, {"Python"}} {
		_, err := svc.Create(ctx, rec, posting.Posting{Kind: posting.KindJob, Title: "Dev", Description: "d", Skills: sk, WorkMode: "remote"})
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, posting.ListQuery{Kind: posting.KindJob, Skill: "golang"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)

	res, err = svc.List(ctx, posting.ListQuery{Kind: posting.KindJob, Skill: "postgres"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)

	res, err = svc.List(ctx, posting.ListQuery{Kind: posting.KindInternship}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
	assert.NotNil(t, res.Items)
}

func TestPagesConcatenateToFullList(t *testing.T) {
	svc, _, rec := setup(t, auth.StatusActive)
	ctx := context.Background()
	for range 7 {
		_, err := svc.Create(ctx, rec, posting.Posting{Kind: posting.KindJob, Title: "Dev", Description: "d"})
		require.NoError(t, err)
	}
	all, err := svc.ListMine(ctx, rec, "", pagination.New(1, 100))
	require.NoError(t, err)
	require.Len(t, all.Items, 7)

	var joined []uuid.UUID
	for page := 1; page <= 3; page++ {
		res, err := svc.ListMine(ctx, rec, "", pagination.New(page, 3))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Items), 3)
		assert.Equal(t, 3, res.TotalPages)
		for _, p := range res.Items {
			joined = append(joined, p.ID)
		}
	}
	want := make([]uuid.UUID, 0, len(all.Items))
	for _, p := range all.Items {
		want = append(want, p.ID)
	}
	assert.Equal(t, want, joined)
}

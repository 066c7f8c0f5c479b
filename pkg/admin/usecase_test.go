package admin_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/filestore"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/repository/memory"
	"github.com/artem13815/jobportal/pkg/resume"
)

type world struct {
	store *memory.Store
	files *filestore.Local
	svc   admin.UseCase
	admin uuid.UUID
}

func newWorld(t *testing.T) world {
	t.Helper()
	store := memory.New()
	files, err := filestore.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := world{store: store, files: files, admin: uuid.New()}
	w.svc = admin.NewService(store.Admin(), store.Users(), store.Resumes(), files, log)
	w.user(t, w.admin, "root@portal.test", auth.RoleAdmin, auth.StatusActive)
	return w
}

func (w world) user(t *testing.T, id uuid.UUID, email string, role auth.Role, st auth.Status) {
	t.Helper()
	require.NoError(t, w.store.Users().Create(context.Background(), auth.User{
		ID: id, Email: email, Name: email, Role: role, Status: st, CreatedAt: time.Now().UTC(),
	}))
}

func TestApproveAndRejectOnlyPending(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	pending, student := uuid.New(), uuid.New()
	w.user(t, pending, "r@corp.com", auth.RoleRecruiter, auth.StatusPendingApproval)
	w.user(t, student, "s@x.com", auth.RoleStudent, auth.StatusActive)

	list, err := w.svc.PendingRecruiters(ctx, pagination.New(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, pending, list.Items[0].ID)

	u, err := w.svc.RejectRecruiter(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, auth.StatusRejected, u.Status)

	_, err = w.svc.ApproveRecruiter(ctx, pending)
	assert.ErrorIs(t, err, admin.ErrNotPending)
	_, err = w.svc.ApproveRecruiter(ctx, student)
	assert.ErrorIs(t, err, admin.ErrNotPending)
	_, err = w.svc.ApproveRecruiter(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestAdminCannotTouchSelf(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	_, err := w.svc.UpdateUserStatus(ctx, w.admin, w.admin, "Inactive")
	assert.ErrorIs(t, err, admin.ErrSelfModify)
	assert.ErrorIs(t, w.svc.DeleteUser(ctx, w.admin, w.admin), admin.ErrSelfModify)

	other := uuid.New()
	w.user(t, other, "s@x.com", auth.RoleStudent, auth.StatusActive)
	_, err = w.svc.UpdateUserStatus(ctx, w.admin, other, "sleeping")
	assert.Error(t, err)
	u, err := w.svc.UpdateUserStatus(ctx, w.admin, other, "inactive")
	require.NoError(t, err)
	assert.Equal(t, auth.StatusInactive, u.Status)
}

func TestDeleteUserCascadesAndRemovesFiles(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	student := uuid.New()
	w.user(t, student, "s@x.com", auth.RoleStudent, auth.StatusActive)

	key := "resumes/" + student.String() + "/cv.pdf"
	_, err := w.files.Put(ctx, key, "application/pdf", bytes.NewReader([]byte("pdf")))
	require.NoError(t, err)
	_, err = w.store.Resumes().Create(ctx, resume.Resume{ID: uuid.New(), OwnerID: student, Filename: "cv.pdf", StorageKey: key, CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, w.svc.DeleteUser(ctx, w.admin, student))
	_, err = w.files.Get(ctx, key)
	assert.ErrorIs(t, err, filestore.ErrNotFound)
	left, err := w.store.Resumes().ListByOwner(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.ErrorIs(t, w.svc.DeleteUser(ctx, w.admin, student), auth.ErrNotFound)
}

func TestDashboardAndAnalytics(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	rec, student := uuid.New(), uuid.New()
	w.user(t, rec, "r@corp.com", auth.RoleRecruiter, auth.StatusActive)
	w.user(t, student, "s@x.com", auth.RoleStudent, auth.StatusActive)
	now := time.Now().UTC()
	job := posting.Posting{ID: uuid.New(), Kind: posting.KindJob, PostedBy: rec, Title: "Go", Location: "Berlin", CreatedAt: now}
	require.NoError(t, w.store.Postings().Create(ctx, job))
	require.NoError(t, w.store.Postings().Create(ctx, posting.Posting{ID: uuid.New(), Kind: posting.KindInternship, PostedBy: rec, Title: "Intern", Location: "berlin", CreatedAt: now}))
	require.NoError(t, w.store.Applications().Create(ctx, application.Application{
		ID: uuid.New(), JobID: job.ID, StudentID: student, RecruiterID: rec, Status: application.StatusNew, CreatedAt: now, UpdatedAt: now,
	}))

	o, err := w.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, o.TotalUsers)
	assert.Equal(t, 2, o.TotalPostings)
	assert.Equal(t, 1, o.PostingsByKind[posting.KindInternship])
	assert.Equal(t, 1, o.ApplicationsByStatus[application.StatusNew])
	assert.Equal(t, 3, o.NewUsersLastWeek)

	win, err := admin.ParseWindow("", "", now.Add(time.Minute))
	require.NoError(t, err)
	a, err := w.svc.Analytics(ctx, win)
	require.NoError(t, err)
	require.Len(t, a.TopRecruiters, 1)
	assert.Equal(t, 2, a.TopRecruiters[0].Postings)
	assert.Len(t, a.Locations, 1)
	require.Len(t, a.Applications, 1)
	assert.Equal(t, 1, a.Applications[0].Count)
}

func TestReport(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	win, err := admin.ParseWindow("", "", time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)

	r, err := w.svc.Report(ctx, "Users", win)
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "root@portal.test", r.Rows[0][2])

	var buf bytes.Buffer
	require.NoError(t, admin.WriteCSV(&buf, r))
	assert.Contains(t, buf.String(), "ID,Name,Email,Role,Status,Created At\n")

	empty, err := w.svc.Report(ctx, "applications", win)
	require.NoError(t, err)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)

	_, err = w.svc.Report(ctx, "salaries", win)
	assert.ErrorIs(t, err, admin.ErrUnknownReport)
}

func TestParseWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	w, err := admin.ParseWindow("", "", now)
	require.NoError(t, err)
	assert.Equal(t, now, w.To)
	assert.Equal(t, now.Add(-30*24*time.Hour), w.From)

	w, err = admin.ParseWindow("2026-03-01", "2026-03-10", now)
	require.NoError(t, err)
	assert.True(t, w.Contains(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	_, err = admin.ParseWindow("2026-03-10", "2026-03-01", now)
	assert.ErrorIs(t, err, admin.ErrInvalidWindow)
	_, err = admin.ParseWindow("yesterday", "", now)
	assert.Error(t, err)
}

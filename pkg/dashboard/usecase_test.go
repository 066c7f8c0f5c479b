package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/dashboard"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/profile"
	"github.com/artem13815/jobportal/pkg/repository/memory"
	"github.com/artem13815/jobportal/pkg/resume"
)

func TestForStudentEmpty(t *testing.T) {
	store := memory.New()
	svc := dashboard.NewService(store.Applications(), store.Notifications(), store.Resumes(), store.Profiles())

	got, err := svc.ForStudent(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, got.TotalApplications)
	assert.NotNil(t, got.Recent)
	assert.Nil(t, got.DefaultResume)
	assert.Zero(t, got.ProfileCompleteness)
	assert.Len(t, got.ByStatus, len(application.Statuses))
}

func TestForStudentSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := dashboard.NewService(store.Applications(), store.Notifications(), store.Resumes(), store.Profiles())
	student := uuid.New()
	now := time.Now().UTC()

	for i, st := range []application.Status{application.StatusNew, application.StatusShortlisted, application.StatusRejected} {
		require.NoError(t, store.Applications().Create(ctx, application.Application{
			ID: uuid.New(), JobID: uuid.New(), StudentID: student, RecruiterID: uuid.New(),
			Status: st, CreatedAt: now.Add(time.Duration(i) * time.Second), UpdatedAt: now,
		}))
	}
	require.NoError(t, store.Notifications().Create(ctx, notification.Prepare(notification.Notification{UserID: student, Title: "hi"})))
	def, err := store.Resumes().Create(ctx, resume.Resume{ID: uuid.New(), OwnerID: student, Filename: "a.pdf", CreatedAt: now})
	require.NoError(t, err)
	_, err = store.Resumes().Create(ctx, resume.Resume{ID: uuid.New(), OwnerID: student, Filename: "b.pdf", CreatedAt: now.Add(time.Second)})
	require.NoError(t, err)
	_, err = store.Profiles().UpsertStudent(ctx, profile.Student{UserID: student, FullName: "Sam", Phone: "1", Location: "Oslo", Skills: []string{"go"}})
	require.NoError(t, err)

	got, err := svc.ForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalApplications)
	assert.Equal(t, 2, got.Active)
	assert.Equal(t, 1, got.ByStatus[application.StatusShortlisted])
	assert.Equal(t, 1, got.UnreadNotifications)
	require.Len(t, got.Recent, 3)
	assert.Equal(t, application.StatusRejected, got.Recent[0].Status)
	require.NotNil(t, got.DefaultResume)
	assert.Equal(t, def.ID, got.DefaultResume.ID)
	assert.Equal(t, 2, got.ResumeCount)
	assert.Equal(t, 50, got.ProfileCompleteness)
}

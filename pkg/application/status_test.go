package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/artem13815/jobportal/pkg/auth"
)

func TestAllowedRecruiterMoves(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusNew, StatusViewed, true},
		{StatusNew, StatusShortlisted, true},
		{StatusViewed, StatusShortlisted, true},
		{StatusShortlisted, StatusInterviewScheduled, true},
		{StatusInterviewScheduled, StatusOfferExtended, true},
		{StatusOfferAccepted, StatusHired, true},
		{StatusOfferExtended, StatusRejected, true},
		{StatusNew, StatusHired, false},
		{StatusShortlisted, StatusViewed, false},
		{StatusRejected, StatusShortlisted, false},
		{StatusHired, StatusRejected, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, Allowed(auth.RoleRecruiter, tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAllowedStudentMoves(t *testing.T) {
	assert.True(t, Allowed(auth.RoleStudent, StatusOfferExtended, StatusOfferAccepted))
	assert.False(t, Allowed(auth.RoleStudent, StatusShortlisted, StatusOfferAccepted))
	for _, st := range Statuses {
		assert.Equal(t, !st.Terminal(), Allowed(auth.RoleStudent, st, StatusWithdrawn), st)
	}
	assert.False(t, Allowed(auth.RoleAdmin, StatusNew, StatusViewed))
}

func TestSettable(t *testing.T) {
	assert.True(t, Settable(auth.RoleRecruiter, StatusHired))
	assert.False(t, Settable(auth.RoleRecruiter, StatusOfferAccepted))
	assert.False(t, Settable(auth.RoleRecruiter, StatusWithdrawn))
	assert.False(t, Settable(auth.RoleStudent, StatusShortlisted))
	assert.False(t, Settable(auth.RoleRecruiter, StatusNew))
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("  interview scheduled ")
	assert.True(t, ok)
	assert.Equal(t, StatusInterviewScheduled, st)
	_, ok = ParseStatus("pending")
	assert.False(t, ok)
}

func TestStatusNotificationTargetsStudent(t *testing.T) {
	a := Application{StudentID: uuid.New(), JobTitle: "Go intern", Company: "Acme"}
	n := StatusNotification(a, StatusShortlisted)
	assert.Equal(t, a.StudentID, n.UserID)
	assert.Equal(t, "star", n.Icon)
	assert.Contains(t, n.Message, "Go intern at Acme")
	assert.False(t, n.Read)
}

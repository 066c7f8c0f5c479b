package application

import (
	"strings"

	"github.com/artem13815/jobportal/pkg/auth"
)

// Status is the closed set of application states.
type Status string

const (
	StatusNew                Status = "New"
	StatusViewed             Status = "Viewed"
	StatusShortlisted        Status = "Shortlisted"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusOfferExtended      Status = "Offer Extended"
	StatusOfferAccepted      Status = "Offer Accepted"
	StatusRejected           Status = "Rejected"
	StatusWithdrawn          Status = "Withdrawn"
	StatusHired              Status = "Hired"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusNew,
	StatusViewed,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusOfferExtended,
	StatusOfferAccepted,
	StatusRejected,
	StatusWithdrawn,
	StatusHired,
}

// ParseStatus matches a status name ignoring case and surrounding blanks.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusWithdrawn || s == StatusHired
}

// recruiterMoves is the recruiter half of the transition table.
// Rejected is added for every non-terminal state in Allowed.
var recruiterMoves = map[Status][]Status{
	StatusNew:                {StatusViewed, StatusShortlisted},
	StatusViewed:             {StatusShortlisted},
	StatusShortlisted:        {StatusInterviewScheduled},
	StatusInterviewScheduled: {StatusOfferExtended},
	StatusOfferAccepted:      {StatusHired},
}

// studentMoves is the student half; Withdrawn is added for every non-terminal state.
var studentMoves = map[Status][]Status{
	StatusOfferExtended: {StatusOfferAccepted},
}

// Targets returns the statuses the role may move an application to from `from`.
func Targets(role auth.Role, from Status) []Status {
	if from.Terminal() {
		return nil
	}
	var out []Status
	switch role {
	case auth.RoleRecruiter:
		out = append(out, recruiterMoves[from]...)
		out = append(out, StatusRejected)
	case auth.RoleStudent:
		out = append(out, studentMoves[from]...)
		out = append(out, StatusWithdrawn)
	}
	return out
}

// Allowed reports whether role may move an application from `from` to `to`.
func Allowed(role auth.Role, from, to Status) bool {
	for _, t := range Targets(role, from) {
		if t == to {
			return true
		}
	}
	return false
}

// Settable reports whether role may ever set `to`, regardless of the current state.
func Settable(role auth.Role, to Status) bool {
	for _, from := range Statuses {
		if Allowed(role, from, to) {
			return true
		}
	}
	return false
}

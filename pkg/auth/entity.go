package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleRecruiter, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusActive          Status = "Active"
	StatusInactive        Status = "Inactive"
	StatusPendingApproval Status = "Pending Approval"
	StatusRejected        Status = "Rejected"
)

// ParseStatus matches an account status ignoring case.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range []Status{StatusActive, StatusInactive, StatusPendingApproval, StatusRejected} {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is what a verified bearer token tells about the caller.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// PasswordReset is a single-use reset grant. The token handed to the user
// is "<ID>.<secret>"; only the bcrypt hash of the secret is stored.
type PasswordReset struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SecretHash string
	ExpiresAt  time.Time
	UsedAt     *time.Time
	CreatedAt  time.Time
}

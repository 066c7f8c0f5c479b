package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/pagination"
)

var ErrNotFound = apperr.NotFound("notification not found")

// TypeApplicationStatus marks a notification written by a status transition.
const TypeApplicationStatus = "application_status"

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Icon      string    `json:"icon"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository: storage port. Every method is scoped to the owning user;
// a notification of another user answers ErrNotFound.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Page) ([]Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/pagination"
)

type UseCase interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Page) (pagination.Result[Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Page) (pagination.Result[Notification], error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, page)
	if err != nil {
		return pagination.Result[Notification]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// Prepare fills identity, timestamp and defaults of a new notification.
func Prepare(n Notification) Notification {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Icon == "" {
		n.Icon = "bell"
	}
	n.Read = false
	return n
}

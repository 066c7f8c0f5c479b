package resume

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
)

var (
	ErrNotFound          = apperr.NotFound("resume not found")
	ErrUnsupportedFormat = apperr.Validation("unsupported file format: only pdf, doc and docx are allowed", nil)
	ErrNotScorable       = apperr.Validation("only pdf and docx resumes can be scored", nil)
	ErrEmptyFile         = apperr.Validation("file is empty", nil)
	ErrEmptyText         = apperr.Validation("no text could be extracted from the resume", nil)
	ErrDefaultConflict   = apperr.Conflict("default resume was changed concurrently, retry the request")
)

// Resume is the metadata of an uploaded resume file.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"-"`
	URL        string    `json:"url"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Repository: storage port. At most one resume per owner has IsDefault set;
// SetDefault, Create and DeleteForOwner keep that invariant atomically.
type Repository interface {
	// Create stores r; it becomes the default when the owner has no default yet.
	Create(ctx context.Context, r Resume) (Resume, error)
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	GetDefault(ctx context.Context, ownerID uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Resume, error)
	// SetDefault clears every other default of the owner and sets id, as one unit.
	SetDefault(ctx context.Context, ownerID, id uuid.UUID) error
	// DeleteForOwner removes the resume; when it was the default the newest
	// remaining resume becomes default. Returns the deleted metadata for file cleanup.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
}

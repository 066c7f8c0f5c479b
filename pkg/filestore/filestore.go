package filestore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

// Store keeps uploaded binaries. Keys are slash separated and never start with "/".
type Store interface {
	// Put writes the object and returns the public URL it is reachable at.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

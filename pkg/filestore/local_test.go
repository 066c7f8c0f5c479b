package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	url, err := s.Put(ctx, "resumes/u1/r1.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/resumes/u1/r1.pdf", url)

	rc, err := s.Get(ctx, "resumes/u1/r1.pdf")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF", string(b))

	require.NoError(t, s.Delete(ctx, "resumes/u1/r1.pdf"))
	_, err = s.Get(ctx, "resumes/u1/r1.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "resumes/u1/r1.pdf"), ErrNotFound)
}

func TestLocalKeyCannotEscapeRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root, "/uploads")
	require.NoError(t, err)
	p, err := s.path("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, root))
}

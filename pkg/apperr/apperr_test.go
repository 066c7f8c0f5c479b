package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedChain(t *testing.T) {
	base := NotFound("resume not found")
	wrapped := fmt.Errorf("load: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.True(t, errors.Is(wrapped, base))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(KindUpstream, "assistant unavailable", errors.New("http 500"))
	assert.Equal(t, "assistant unavailable: http 500", err.Error())
	assert.Equal(t, "upstream", err.Kind.String())
}

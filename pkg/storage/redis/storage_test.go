package redis

import (
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*Storage)(nil)

func TestStorageKeyHasSingleSeparator(t *testing.T) {
	s := NewStorage(nil, "jobportal:rl:", nil)
	assert.Equal(t, "jobportal:rl:10.0.0.1|/api/v1/auth/login", s.key("10.0.0.1|/api/v1/auth/login"))
}

func TestStorageReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 20 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	s := NewStorage(client, "test:", nil)

	_, err := s.Get("k")
	assert.Error(t, err)
	assert.Error(t, s.Set("k", []byte("v"), time.Minute))
	assert.NoError(t, s.Close())
}

// Runs against a real server only when JOBPORTAL_TEST_REDIS_URL is set.
func TestStorageRoundTrip(t *testing.T) {
	url := os.Getenv("JOBPORTAL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("JOBPORTAL_TEST_REDIS_URL not set")
	}
	client, err := Connect(t.Context(), url)
	require.NoError(t, err)
	defer client.Close()

	prefix := "jobportal:test:" + uuid.NewString() + ":"
	s := NewStorage(client, prefix, nil)
	t.Cleanup(func() { _ = s.Reset() })

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("1.2.3.4|/api/v1/auth/login", []byte("hits"), time.Minute))
	got, err = s.Get("1.2.3.4|/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, "hits", string(got))
	n, err := client.Exists(t.Context(), prefix+"1.2.3.4|/api/v1/auth/login").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.Delete("1.2.3.4|/api/v1/auth/login"))
	got, err = s.Get("1.2.3.4|/api/v1/auth/login")
	require.NoError(t, err)
	assert.Nil(t, got)
}

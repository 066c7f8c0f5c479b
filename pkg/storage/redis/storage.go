package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 250 * time.Millisecond

// Storage implements fiber.Storage over a shared client. Keys are namespaced
// by prefix. The client is owned by the caller, so Close leaves it open.
type Storage struct {
	client redis.UniversalClient
	prefix string
	log    *slog.Logger
}

func NewStorage(client redis.UniversalClient, prefix string, log *slog.Logger) *Storage {
	if log == nil {
		log = slog.Default()
	}
	return &Storage{client: client, prefix: prefix, log: log}
}

// key namespaces k; the prefix carries its own separator.
func (s *Storage) key(k string) string { return s.prefix + k }

// Get returns nil without error for a missing key.
func (s *Storage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.log.Warn("redis storage get failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, err
	}
	return val, nil
}

// Set stores val; a zero exp keeps the key without expiry.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key(key), val, exp).Err(); err != nil {
		s.log.Warn("redis storage set failed", slog.String("key", key), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *Storage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Del(ctx, s.key(key)).Err()
}

// Reset removes every key under the prefix.
func (s *Storage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (s *Storage) Close() error { return nil }

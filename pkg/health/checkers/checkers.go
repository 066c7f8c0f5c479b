// Package checkers adapts storage clients to health.Checker.
package checkers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Ping is a named readiness check bounded by its own timeout.
type Ping struct {
	name    string
	timeout time.Duration
	ping    func(ctx context.Context) error
}

func NewPing(name string, timeout time.Duration, ping func(ctx context.Context) error) *Ping {
	return &Ping{name: name, timeout: timeout, ping: ping}
}

func (p *Ping) Name() string { return p.name }

func (p *Ping) Check(ctx context.Context) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.ping(ctx)
}

// Postgres pings through the pool. A failure carries the pool usage, which
// tells an exhausted pool apart from an unreachable server.
func Postgres(pool *pgxpool.Pool, timeout time.Duration) *Ping {
	return NewPing("postgres", timeout, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			st := pool.Stat()
			return fmt.Errorf("%w (connections in use %d of %d)", err, st.AcquiredConns(), st.MaxConns())
		}
		return nil
	})
}

func Redis(client redis.UniversalClient, timeout time.Duration) *Ping {
	return NewPing("redis", timeout, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

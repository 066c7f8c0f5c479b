// Package ratelimit throttles credential endpoints per client IP and route.
package ratelimit

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Config struct {
	// Max requests per key within Window; zero disables throttling.
	Max    int
	Window time.Duration
	// Storage shares counters between instances; nil keeps them in process.
	Storage fiber.Storage
}

// Key buckets requests by client IP plus route path, so every throttled
// route has its own budget.
func Key(c *fiber.Ctx) string {
	return c.IP() + "|" + c.Path()
}

// Middleware rejects callers over the limit with 429 and Retry-After.
func Middleware(cfg Config) fiber.Handler {
	if cfg.Max <= 0 || cfg.Window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:               cfg.Max,
		Expiration:        cfg.Window,
		KeyGenerator:      Key,
		Storage:           cfg.Storage,
		LimiterMiddleware: limiter.FixedWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"message": "too many requests, try again later"})
		},
	})
}

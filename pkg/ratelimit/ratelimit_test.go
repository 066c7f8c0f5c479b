package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	throttle := Middleware(cfg)
	app.Post("/login", throttle, ok)
	app.Post("/forgot", throttle, ok)
	return app
}

func status(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	return resp
}

func TestMiddlewareLimitsPerRoute(t *testing.T) {
	app := newApp(Config{Max: 1, Window: time.Minute})

	assert.Equal(t, http.StatusOK, status(t, app, "/login").StatusCode)
	resp := status(t, app, "/login")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	assert.Equal(t, http.StatusOK, status(t, app, "/forgot").StatusCode)
}

func TestMiddlewareDisabled(t *testing.T) {
	app := newApp(Config{Max: 0, Window: time.Minute})
	for range 5 {
		assert.Equal(t, http.StatusOK, status(t, app, "/login").StatusCode)
	}
}

func TestKeyCombinesIPAndPath(t *testing.T) {
	app := fiber.New()
	var key, ip string
	app.Get("/x/y", func(c *fiber.Ctx) error {
		key, ip = Key(c), c.IP()
		return nil
	})
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/x/y", nil))
	require.NoError(t, err)
	assert.Equal(t, ip+"|/x/y", key)
}

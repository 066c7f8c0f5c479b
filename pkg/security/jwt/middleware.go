package jwt

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/pkg/auth"
)

const identityKey = "identity"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success the caller identity is stored in locals, see Identity.
func NewAuthMiddleware(g *Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and a bare token.
		tokenStr := header
		if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing bearer token"})
		}
		id, err := g.Parse(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": ErrInvalidToken.Error()})
		}
		c.Locals(identityKey, id)
		c.Locals("userId", id.UserID.String())
		return c.Next()
	}
}

// RequireRole lets through only callers whose role is listed. Must run after NewAuthMiddleware.
func RequireRole(roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := Identity(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		if !slices.Contains(roles, id.Role) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "access denied for role " + string(id.Role)})
		}
		return c.Next()
	}
}

// Identity returns the caller stored by the auth middleware.
func Identity(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}

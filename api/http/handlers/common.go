package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/security/jwt"
)

var errBadJSON = apperr.Validation("invalid JSON payload", nil)

// parsePage reads page/limit; malformed values fall back to defaults.
func parsePage(c *fiber.Ctx) pagination.Page {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	return pagination.New(page, limit)
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid "+name, map[string]string{name: "must be a UUID"})
	}
	return id, nil
}

func queryID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid "+name, map[string]string{name: "must be a UUID"})
	}
	return id, nil
}

// caller is the identity set by the auth middleware; routes using it are always behind it.
func caller(c *fiber.Ctx) auth.Identity {
	id, _ := jwt.Identity(c)
	return id
}

func bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return errBadJSON
	}
	return nil
}

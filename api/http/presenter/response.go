package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/pkg/apperr"
)

type ErrorResponse struct {
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

// retryAfterSeconds is advertised on upstream timeouts.
const retryAfterSeconds = "30"

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUpstream:
		return http.StatusBadGateway
	case apperr.KindUpstreamTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err as an error response. Internal errors are logged and hidden.
func Fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindInternal {
		slog.Default().ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("request_id", c.Locals("requestid")),
			slog.String("error", err.Error()),
		)
		return Error(c, http.StatusInternalServerError, "internal server error")
	}
	resp := ErrorResponse{Message: ae.Message, Fields: ae.Fields}
	if ae.Kind == apperr.KindUpstreamTimeout {
		resp.Retryable = true
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
	}
	if ae.Kind == apperr.KindUpstream {
		slog.Default().WarnContext(c.UserContext(), "upstream failure", slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	return JSON(c, StatusOf(ae.Kind), resp)
}

// ErrorHandler is the Fiber fallback for errors returned by handlers and
// framework errors such as unknown routes or oversize bodies.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return Fail(c, err)
}

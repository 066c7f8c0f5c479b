package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/pkg/health"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	svc     health.ReadinessUseCase
	started time.Time
}

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{svc: svc, started: time.Now()}
}

// Health reports process liveness and uptime in whole seconds.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": int64(time.Since(h.started).Seconds()),
	})
}

// Ready pings every configured storage dependency.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
	defer cancel()
	rep, err := h.svc.Ready(ctx)
	status := fiber.StatusOK
	if err != nil {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(rep)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/dashboard"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
)

// StudentHandler serves the student dashboard and notification inbox.
type StudentHandler struct {
	dashboard     dashboard.UseCase
	notifications notification.UseCase
}

func NewStudentHandler(d dashboard.UseCase, n notification.UseCase) *StudentHandler {
	return &StudentHandler{dashboard: d, notifications: n}
}

// @Summary Student dashboard
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dashboard.Student
// @Router  /student/dashboard [get]
func (h *StudentHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.ForStudent(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type notificationResult = pagination.Result[notification.Notification]

type notificationPage struct {
	notificationResult
	Unread int `json:"unread"`
}

// Notifications lists the inbox; unread=true hides read entries.
// @Summary Notifications
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Param   unread query bool false "only unread"
// @Param   page   query int  false "page"
// @Param   limit  query int  false "page size"
// @Success 200 {object} notificationPage
// @Router  /student/notifications [get]
func (h *StudentHandler) Notifications(c *fiber.Ctx) error {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	userID := caller(c).UserID
	res, err := h.notifications.List(c.Context(), userID, unreadOnly, parsePage(c))
	if err != nil {
		return presenter.Fail(c, err)
	}
	unread, err := h.notifications.UnreadCount(c.Context(), userID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, notificationPage{notificationResult: res, Unread: unread})
}

// @Summary Unread notification count
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router  /student/notifications/unread-count [get]
func (h *StudentHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.notifications.UnreadCount(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"unread": n})
}

// @Summary Mark a notification read
// @Tags    student
// @Security BearerAuth
// @Param   id path string true "notification id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /student/notifications/{id}/read [patch]
func (h *StudentHandler) MarkRead(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.notifications.MarkRead(c.Context(), caller(c).UserID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary Mark every notification read
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router  /student/notifications/read-all [patch]
func (h *StudentHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.notifications.MarkAllRead(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"updated": n})
}

// @Summary Delete a notification
// @Tags    student
// @Security BearerAuth
// @Param   id path string true "notification id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /student/notifications/{id} [delete]
func (h *StudentHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.notifications.Delete(c.Context(), caller(c).UserID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

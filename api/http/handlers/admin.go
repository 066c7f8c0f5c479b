package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
)

type AdminHandler struct {
	useCase admin.UseCase
	now     func() time.Time
}

func NewAdminHandler(useCase admin.UseCase) *AdminHandler {
	return &AdminHandler{useCase: useCase, now: func() time.Time { return time.Now().UTC() }}
}

// @Summary Admin dashboard
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} admin.Overview
// @Router  /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.useCase.Dashboard(c.Context())
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Analytics aggregates activity inside [from, to); the default is the last 30 days.
// @Summary Admin analytics
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Param   from query string false "YYYY-MM-DD or RFC3339"
// @Param   to   query string false "YYYY-MM-DD or RFC3339"
// @Success 200 {object} admin.Analytics
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/analytics [get]
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	w, err := admin.ParseWindow(c.Query("from"), c.Query("to"), h.now())
	if err != nil {
		return presenter.Fail(c, err)
	}
	out, err := h.useCase.Analytics(c.Context(), w)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary List users
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Param   search query string false "name or email"
// @Param   role   query string false "student, recruiter or admin"
// @Param   status query string false "account status"
// @Param   page   query int    false "page"
// @Param   limit  query int    false "page size"
// @Success 200 {object} pagination.Result[auth.User]
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	f := admin.UserFilter{Search: c.Query("search")}
	if v := strings.TrimSpace(c.Query("role")); v != "" {
		role, ok := auth.ParseRole(v)
		if !ok {
			return presenter.Fail(c, apperr.Validation("invalid role", map[string]string{"role": "expected student, recruiter or admin"}))
		}
		f.Role = role
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		st, ok := auth.ParseStatus(v)
		if !ok {
			return presenter.Fail(c, apperr.Validation("invalid status", map[string]string{"status": "unknown status"}))
		}
		f.Status = st
	}
	res, err := h.useCase.ListUsers(c.Context(), f, parsePage(c))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Change a user's status
// @Tags    admin
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string        true "user id"
// @Param   input body statusRequest true "new status"
// @Success 200 {object} auth.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	u, err := h.useCase.UpdateUserStatus(c.Context(), caller(c).UserID, id, req.Status)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// @Summary Delete a user
// @Tags    admin
// @Security BearerAuth
// @Param   id path string true "user id"
// @Success 204
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.useCase.DeleteUser(c.Context(), caller(c).UserID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary Recruiters waiting for approval
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Result[auth.User]
// @Router  /admin/approvals [get]
func (h *AdminHandler) PendingRecruiters(c *fiber.Ctx) error {
	res, err := h.useCase.PendingRecruiters(c.Context(), parsePage(c))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Approve a recruiter
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Param   id path string true "user id"
// @Success 200 {object} auth.User
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /admin/approvals/{id}/approve [patch]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.useCase.ApproveRecruiter)
}

// @Summary Reject a recruiter
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Param   id path string true "user id"
// @Success 200 {object} auth.User
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /admin/approvals/{id}/reject [patch]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.useCase.RejectRecruiter)
}

func (h *AdminHandler) decide(c *fiber.Ctx, fn func(context.Context, uuid.UUID) (auth.User, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	u, err := fn(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Report builds a tabular export; format=csv streams it as a download.
// @Summary Export a report
// @Tags    admin
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param   type   query string false "users, postings or applications"
// @Param   from   query string false "YYYY-MM-DD or RFC3339"
// @Param   to     query string false "YYYY-MM-DD or RFC3339"
// @Param   format query string false "json or csv"
// @Success 200 {object} admin.Report
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/reports [get]
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	w, err := admin.ParseWindow(c.Query("from"), c.Query("to"), h.now())
	if err != nil {
		return presenter.Fail(c, err)
	}
	kind := c.Query("type", "users")
	r, err := h.useCase.Report(c.Context(), kind, w)
	if err != nil {
		return presenter.Fail(c, err)
	}
	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		return presenter.JSON(c, http.StatusOK, r)
	case "csv":
		var buf bytes.Buffer
		if err := admin.WriteCSV(&buf, r); err != nil {
			return presenter.Fail(c, apperr.Wrap(apperr.KindInternal, "failed to render report", err))
		}
		name := strings.ToLower(strings.TrimSpace(kind)) + "-" + r.GeneratedAt.Format("20060102") + ".csv"
		c.Attachment(name)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Status(http.StatusOK).Send(buf.Bytes())
	default:
		return presenter.Fail(c, apperr.Validation("invalid format", map[string]string{"format": "expected json or csv"}))
	}
}

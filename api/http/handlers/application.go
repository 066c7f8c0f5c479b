package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/application"
)

type ApplicationHandler struct {
	useCase application.UseCase
}

func NewApplicationHandler(useCase application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{useCase: useCase}
}

type applyRequest struct {
	JobID       string `json:"jobId"`
	ResumeID    string `json:"resumeId"`
	CoverLetter string `json:"coverLetter"`
}

// Apply submits the caller's application to a posting.
// @Summary Apply to a posting
// @Tags    applications
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body applyRequest true "application"
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return presenter.Fail(c, apperr.Validation("invalid application", map[string]string{"jobId": "must be a UUID"}))
	}
	in := application.ApplyInput{JobID: jobID, CoverLetter: req.CoverLetter}
	if v := strings.TrimSpace(req.ResumeID); v != "" {
		rid, err := uuid.Parse(v)
		if err != nil {
			return presenter.Fail(c, apperr.Validation("invalid application", map[string]string{"resumeId": "must be a UUID"}))
		}
		in.ResumeID = &rid
	}
	a, err := h.useCase.Apply(c.Context(), caller(c).UserID, in)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

func statusFilter(c *fiber.Ctx) (application.Status, error) {
	v := strings.TrimSpace(c.Query("status"))
	if v == "" {
		return "", nil
	}
	st, ok := application.ParseStatus(v)
	if !ok {
		return "", apperr.Validation("invalid status", map[string]string{"status": "unknown status"})
	}
	return st, nil
}

// ListForRecruiter lists applications to the caller's postings.
// @Summary Applications received
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Param   status query string false "status"
// @Param   jobId  query string false "posting id"
// @Param   search query string false "student name or email"
// @Param   page   query int    false "page"
// @Param   limit  query int    false "page size"
// @Success 200 {object} pagination.Result[application.Application]
// @Router  /applications/recruiter [get]
func (h *ApplicationHandler) ListForRecruiter(c *fiber.Ctx) error {
	st, err := statusFilter(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	jobID, err := queryID(c, "jobId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	res, err := h.useCase.ListForRecruiter(c.Context(), caller(c).UserID, application.Filter{
		JobID:  jobID,
		Status: st,
		Search: strings.TrimSpace(c.Query("search")),
	}, parsePage(c))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// GetForRecruiter opens one application; a New one becomes Viewed.
// @Summary Open an application
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Param   id path string true "application id"
// @Success 200 {object} application.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) GetForRecruiter(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.useCase.ViewForRecruiter(c.Context(), caller(c).UserID, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application along the status table.
// @Summary Change application status
// @Tags    applications
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string        true "application id"
// @Param   input body statusRequest true "new status"
// @Success 200 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.useCase.UpdateStatus(c.Context(), caller(c), id, req.Status)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// ListForStudent lists the caller's own applications.
// @Summary My applications
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Param   status query string false "status"
// @Param   page   query int    false "page"
// @Param   limit  query int    false "page size"
// @Success 200 {object} pagination.Result[application.Application]
// @Router  /student/applications [get]
func (h *ApplicationHandler) ListForStudent(c *fiber.Ctx) error {
	st, err := statusFilter(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	res, err := h.useCase.ListForStudent(c.Context(), caller(c).UserID, st, parsePage(c))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary One of my applications
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Param   id path string true "application id"
// @Success 200 {object} application.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /student/applications/{id} [get]
func (h *ApplicationHandler) GetForStudent(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.useCase.GetForStudent(c.Context(), caller(c).UserID, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// Withdraw is the student's exit from a non-terminal application.
// @Summary Withdraw an application
// @Tags    student
// @Produce json
// @Security BearerAuth
// @Param   id path string true "application id"
// @Success 200 {object} application.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /student/applications/{id}/withdraw [patch]
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.useCase.Withdraw(c.Context(), caller(c).UserID, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

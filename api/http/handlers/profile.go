package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/profile"
)

type ProfileHandler struct {
	useCase profile.UseCase
}

func NewProfileHandler(useCase profile.UseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// GetStudent returns the caller's student profile.
// @Summary Get student profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Student
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile/student [get]
func (h *ProfileHandler) GetStudent(c *fiber.Ctx) error {
	p, err := h.useCase.GetStudent(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// SaveStudent creates or replaces the caller's student profile.
// @Summary Upsert student profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body profile.Student true "profile"
// @Success 200 {object} profile.Student
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile/student [post]
func (h *ProfileHandler) SaveStudent(c *fiber.Ctx) error {
	var p profile.Student
	if err := bind(c, &p); err != nil {
		return presenter.Fail(c, err)
	}
	p.UserID = caller(c).UserID
	saved, err := h.useCase.SaveStudent(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, saved)
}

// @Summary Get recruiter company profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Company
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile/recruiter [get]
func (h *ProfileHandler) GetCompany(c *fiber.Ctx) error {
	p, err := h.useCase.GetCompany(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary Upsert recruiter company profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body profile.Company true "company"
// @Success 200 {object} profile.Company
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile/recruiter [post]
func (h *ProfileHandler) SaveCompany(c *fiber.Ctx) error {
	var p profile.Company
	if err := bind(c, &p); err != nil {
		return presenter.Fail(c, err)
	}
	p.UserID = caller(c).UserID
	saved, err := h.useCase.SaveCompany(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, saved)
}

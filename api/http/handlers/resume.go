package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/resume"
)

// uploadField is the multipart field carrying the resume file.
const uploadField = "resume"

type ResumeHandler struct {
	useCase  resume.UseCase
	maxBytes int64
}

func NewResumeHandler(useCase resume.UseCase, maxBytes int64) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ResumeHandler{useCase: useCase, maxBytes: maxBytes}
}

// List returns the caller's resumes, newest first.
// @Summary My resumes
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Router  /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	items, err := h.useCase.List(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Upload stores a pdf, doc or docx file; the first upload becomes the default.
// @Summary Upload a resume
// @Tags    resumes
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   resume formData file true "pdf, doc or docx"
// @Success 201 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadField)
	if err != nil || fh == nil {
		return presenter.Fail(c, apperr.Validation("file is required", map[string]string{uploadField: "required"}))
	}
	if _, ok := resume.Extension(fh.Filename); !ok {
		return presenter.Fail(c, resume.ErrUnsupportedFormat)
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Fail(c, apperr.Validation("failed to open uploaded file", nil))
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Fail(c, err)
	}
	r, err := h.useCase.Upload(c.Context(), caller(c).UserID, resume.UploadInput{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, r)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, apperr.Validation("failed to read file", nil)
	}
	if int64(len(b)) > max {
		return nil, apperr.Validation(fmt.Sprintf("file is too large: limit is %d bytes", max), map[string]string{uploadField: "too large"})
	}
	return b, nil
}

// SetDefault marks one resume as default and returns the updated list.
// @Summary Set default resume
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   id path string true "resume id"
// @Success 200 {array} resume.Resume
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/default [patch]
func (h *ResumeHandler) SetDefault(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.useCase.SetDefault(c.Context(), caller(c).UserID, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary Delete a resume
// @Tags    resumes
// @Security BearerAuth
// @Param   id path string true "resume id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.useCase.Delete(c.Context(), caller(c).UserID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type targetRoleRequest struct {
	TargetRole string `json:"targetRole"`
}

// Build drafts a resume from the caller's profile with the AI assistant.
// @Summary Build a resume with AI
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body targetRoleRequest false "target role"
// @Success 200 {object} resume.Generated
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/ai-build [post]
func (h *ResumeHandler) Build(c *fiber.Ctx) error {
	var req targetRoleRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return presenter.Fail(c, err)
		}
	}
	out, err := h.useCase.BuildWithAI(c.Context(), caller(c).UserID, req.TargetRole)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Score asks the AI assistant to review a stored resume.
// @Summary Check resume score
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string            true  "resume id"
// @Param   input body targetRoleRequest false "target role"
// @Success 200 {object} resume.ScoreResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/check-score [post]
func (h *ResumeHandler) Score(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req targetRoleRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return presenter.Fail(c, err)
		}
	}
	out, err := h.useCase.CheckScore(c.Context(), caller(c).UserID, id, req.TargetRole)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/posting"
)

type PostingHandler struct {
	useCase posting.UseCase
}

func NewPostingHandler(useCase posting.UseCase) *PostingHandler {
	return &PostingHandler{useCase: useCase}
}

type postingRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	WorkMode        string   `json:"workMode"`
	Skills          []string `json:"skills"`
	Openings        int      `json:"openings"`
	Deadline        string   `json:"deadline"` // YYYY-MM-DD (end of day UTC) or RFC3339
	EmploymentType  string   `json:"employmentType"`
	Salary          string   `json:"salary"`
	ExperienceLevel string   `json:"experienceLevel"`
	Duration        string   `json:"duration"`
	Stipend         string   `json:"stipend"`
}

func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		end := t.Add(24*time.Hour - time.Second).UTC()
		return &end, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, apperr.Validation("invalid posting", map[string]string{"deadline": "expected YYYY-MM-DD or RFC3339"})
	}
	t = t.UTC()
	return &t, nil
}

// Create returns the handler publishing postings of one kind.
// @Summary Publish a job
// @Tags    postings
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body postingRequest true "posting"
// @Success 201 {object} posting.Posting
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs/post [post]
func (h *PostingHandler) Create(kind posting.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req postingRequest
		if err := bind(c, &req); err != nil {
			return presenter.Fail(c, err)
		}
		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			return presenter.Fail(c, err)
		}
		p, err := h.useCase.Create(c.Context(), caller(c).UserID, posting.Posting{
			Kind:            kind,
			Title:           req.Title,
			Description:     req.Description,
			Company:         req.Company,
			Location:        req.Location,
			WorkMode:        req.WorkMode,
			Skills:          req.Skills,
			Openings:        req.Openings,
			Deadline:        deadline,
			EmploymentType:  req.EmploymentType,
			Salary:          req.Salary,
			ExperienceLevel: req.ExperienceLevel,
			Duration:        req.Duration,
			Stipend:         req.Stipend,
		})
		if err != nil {
			return presenter.Fail(c, err)
		}
		return presenter.JSON(c, http.StatusCreated, p)
	}
}

// List returns the handler browsing postings of one kind.
// @Summary Browse jobs
// @Tags    postings
// @Produce json
// @Security BearerAuth
// @Param   search   query string false "title or company"
// @Param   location query string false "location"
// @Param   workMode query string false "work mode"
// @Param   skill    query string false "skill, aliases included"
// @Param   page     query int    false "page"
// @Param   limit    query int    false "page size"
// @Success 200 {object} pagination.Result[posting.Posting]
// @Router  /jobs [get]
func (h *PostingHandler) List(kind posting.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := h.useCase.List(c.Context(), posting.ListQuery{
			Kind:     kind,
			Search:   c.Query("search"),
			Location: c.Query("location"),
			WorkMode: c.Query("workMode"),
			Skill:    c.Query("skill"),
		}, parsePage(c))
		if err != nil {
			return presenter.Fail(c, err)
		}
		return presenter.JSON(c, http.StatusOK, res)
	}
}

// Get returns the handler reading one posting of a kind.
// @Summary Get a job
// @Tags    postings
// @Produce json
// @Security BearerAuth
// @Param   id path string true "posting id"
// @Success 200 {object} posting.Posting
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *PostingHandler) Get(kind posting.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return presenter.Fail(c, err)
		}
		p, err := h.useCase.Get(c.Context(), kind, id)
		if err != nil {
			return presenter.Fail(c, err)
		}
		return presenter.JSON(c, http.StatusOK, p)
	}
}

// Mine lists the caller's own postings of the given kind.
// @Summary My postings
// @Tags    postings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Result[posting.Posting]
// @Router  /jobs/mine [get]
// @Router  /internships/mine [get]
func (h *PostingHandler) Mine(kind posting.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := h.useCase.ListMine(c.Context(), caller(c).UserID, kind, parsePage(c))
		if err != nil {
			return presenter.Fail(c, err)
		}
		return presenter.JSON(c, http.StatusOK, res)
	}
}

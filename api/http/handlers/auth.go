package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type authResponse struct {
	User    auth.User `json:"user"`
	Token   string    `json:"token,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	result, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	resp := authResponse{User: result.User, Token: result.Token}
	if result.Token == "" {
		resp.Message = "registration received, the account is waiting for admin approval"
	}
	return presenter.JSON(c, http.StatusCreated, resp)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles user login. The role must match the account's role.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "email is required"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}
	if req.Role == "" {
		fields["role"] = "role is required"
	}
	if len(fields) > 0 {
		return presenter.JSON(c, http.StatusBadRequest, presenter.ErrorResponse{Message: "email, password and role are required", Fields: fields})
	}
	role, _ := auth.ParseRole(req.Role)
	result, err := h.useCase.Login(c.Context(), req.Email, req.Password, role)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

type forgotRequest struct {
	Email string `json:"email"`
}

const forgotMessage = "if an account with that email exists, a password reset link has been sent"

// ForgotPassword always answers with the same message.
// @Summary Request password reset
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body forgotRequest true "email"
// @Success 200 {object} map[string]string
// @Router  /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.useCase.ForgotPassword(c.Context(), req.Email); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": forgotMessage})
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword consumes a reset token.
// @Summary Reset password
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body resetRequest true "token and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := bind(c, &req); err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.useCase.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "password has been reset"})
}

// Me returns the authenticated account.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.User
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.useCase.Me(c.Context(), caller(c).UserID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, u)
}

package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user login with username and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Username == "" || req.Password == "" {
		return common.SendValidationError(c, map[string]string{
			"credentials": "username and password are required",
		})
	}

	result, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register handles account creation
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return common.SendServerError(c)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{User: user, Token: token})
}

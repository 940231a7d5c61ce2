package handler

import (
	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /api/register
// @Summary Register
// @Description Create an account. The returned profile starts with zero counters.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account"
// @Success 201 {object} response.Response{data=dto.UserProfile}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response "Username taken"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Register")
		return
	}

	response.Created(c, "User registered successfully", profile)
}

// Login POST /api/login
// @Summary Login
// @Description Check credentials and return the profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=dto.UserProfile}
// @Failure 401 {object} response.Response "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Login")
		return
	}

	response.OK(c, "Login successful", profile)
}

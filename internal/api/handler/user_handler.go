package handler

import (
	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile reads and account updates.
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// Profile GET /api/user/profile
// @Summary User profile
// @Description Profile with follower, following, likes and post totals.
// @Tags users
// @Produce json
// @Param user query string true "Username"
// @Success 200 {object} response.Response{data=dto.ProfileStats}
// @Failure 404 {object} response.Response "User not found"
// @Router /user/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), c.Query("user"))
	if err != nil {
		handleServiceError(c, err, "Get profile")
		return
	}

	response.OK(c, "", profile)
}

// UpdateProfilePicture POST /api/user/update-profile-picture
// @Summary Update profile picture
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfilePictureRequest true "New image"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response "User not found"
// @Router /user/update-profile-picture [post]
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	var req dto.UpdateProfilePictureRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.UpdateProfilePicture(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Update profile picture")
		return
	}

	response.OK(c, "Profile picture updated", nil)
}

// UpdatePassword POST /api/user/update-password
// @Summary Update password
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Password too short"
// @Failure 404 {object} response.Response "User not found"
// @Router /user/update-password [post]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.UpdatePassword(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Update password")
		return
	}

	response.OK(c, "Password updated", nil)
}

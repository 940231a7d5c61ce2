package handler

import (
	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationHandler serves follow, unfollow and follow checks.
type RelationHandler struct {
	relationService *service.RelationService
}

// NewRelationHandler creates a RelationHandler.
func NewRelationHandler(relationService *service.RelationService) *RelationHandler {
	return &RelationHandler{relationService: relationService}
}

// Follow POST /api/follow
// @Summary Follow a user
// @Tags follows
// @Accept json
// @Produce json
// @Param body body dto.FollowRequest true "Edge"
// @Success 200 {object} response.Response{data=dto.FollowStatus}
// @Failure 400 {object} response.Response "Self-follow"
// @Failure 409 {object} response.Response "Already following"
// @Router /follow [post]
func (h *RelationHandler) Follow(c *gin.Context) {
	var req dto.FollowRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.relationService.Follow(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Follow")
		return
	}

	response.OK(c, "Now following "+req.TargetUsername, status)
}

// Unfollow POST /api/unfollow
// @Summary Unfollow a user
// @Tags follows
// @Accept json
// @Produce json
// @Param body body dto.FollowRequest true "Edge"
// @Success 200 {object} response.Response{data=dto.FollowStatus}
// @Failure 409 {object} response.Response "Not following"
// @Router /unfollow [post]
func (h *RelationHandler) Unfollow(c *gin.Context) {
	var req dto.FollowRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.relationService.Unfollow(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Unfollow")
		return
	}

	response.OK(c, "Unfollowed "+req.TargetUsername, status)
}

// Check GET /api/follow/check
// @Summary Follow status
// @Tags follows
// @Produce json
// @Param followerUsername query string true "Follower"
// @Param targetUsername query string true "Target"
// @Success 200 {object} response.Response{data=dto.FollowStatus}
// @Router /follow/check [get]
func (h *RelationHandler) Check(c *gin.Context) {
	var req dto.FollowRequest
	if !bindQuery(c, &req) {
		return
	}

	status, err := h.relationService.Status(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Check follow")
		return
	}

	response.OK(c, "", status)
}

package handler

import (
	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves comment reads and writes.
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List GET /api/comments
// @Summary Comments on a video
// @Tags comments
// @Produce json
// @Param videoId query string true "Video ID"
// @Success 200 {object} response.Response{data=[]dto.CommentInfo}
// @Router /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.commentService.List(c.Request.Context(), c.Query("videoId"))
	if err != nil {
		handleListError(c, err, "List comments")
		return
	}

	response.OK(c, "", comments)
}

// Add POST /api/comments/add
// @Summary Add a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param body body dto.AddCommentRequest true "Comment"
// @Success 201 {object} response.Response{data=dto.CreatedComment}
// @Failure 404 {object} response.Response "Video or user not found"
// @Router /comments/add [post]
func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.commentService.Add(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Add comment")
		return
	}

	response.Created(c, "Comment added", created)
}

// Edit POST /api/comments/edit
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param body body dto.EditCommentRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Not the author"
// @Router /comments/edit [post]
func (h *CommentHandler) Edit(c *gin.Context) {
	var req dto.EditCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.commentService.Edit(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Edit comment")
		return
	}

	response.OK(c, "Comment updated", nil)
}

// Delete POST /api/comments/delete
// @Summary Delete a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param body body dto.DeleteCommentRequest true "Comment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Not the author"
// @Router /comments/delete [post]
func (h *CommentHandler) Delete(c *gin.Context) {
	var req dto.DeleteCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Delete comment")
		return
	}

	response.OK(c, "Comment deleted", nil)
}

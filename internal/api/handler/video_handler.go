package handler

import (
	"net/http"

	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/service"
	"likering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoHandler serves the feed, video listings, search and engagement.
type VideoHandler struct {
	videoService  *service.VideoService
	searchService *service.SearchService
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(videoService *service.VideoService, searchService *service.SearchService) *VideoHandler {
	return &VideoHandler{
		videoService:  videoService,
		searchService: searchService,
	}
}

// Feed GET /api/videos/all
// @Summary Video feed
// @Description Every video newest first, annotated with the viewer's like and follow state. Failures degrade to an empty list with status 200.
// @Tags videos
// @Produce json
// @Param username query string false "Viewer"
// @Success 200 {object} response.Response{data=[]dto.FeedVideo}
// @Router /videos/all [get]
func (h *VideoHandler) Feed(c *gin.Context) {
	videos, err := h.videoService.Feed(c.Request.Context(), c.Query("username"))
	if err != nil {
		logger.Error("Get feed failed", zap.Error(err))
		response.FailList(c, http.StatusOK, "Could not load videos")
		return
	}

	response.OK(c, "", videos)
}

// ListByUser GET /api/videos/user
// @Summary Videos uploaded by a user
// @Tags videos
// @Produce json
// @Param user query string true "Owner"
// @Success 200 {object} response.Response{data=[]dto.VideoInfo}
// @Router /videos/user [get]
func (h *VideoHandler) ListByUser(c *gin.Context) {
	videos, err := h.videoService.ListByUser(c.Request.Context(), c.Query("user"))
	if err != nil {
		handleListError(c, err, "List user videos")
		return
	}

	response.OK(c, "", videos)
}

// ListLiked GET /api/videos/liked-by-user
// @Summary Videos a user liked
// @Tags videos
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} response.Response{data=[]dto.VideoInfo}
// @Router /videos/liked-by-user [get]
func (h *VideoHandler) ListLiked(c *gin.Context) {
	videos, err := h.videoService.ListLiked(c.Request.Context(), c.Query("username"))
	if err != nil {
		handleListError(c, err, "List liked videos")
		return
	}

	response.OK(c, "", videos)
}

// Search GET /api/videos/search
// @Summary Search videos
// @Description Full-text search over title, description and owner.
// @Tags videos
// @Produce json
// @Param q query string true "Query"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} response.Response{data=dto.SearchVideoData}
// @Failure 400 {object} response.Response
// @Router /videos/search [get]
func (h *VideoHandler) Search(c *gin.Context) {
	var req dto.SearchVideoRequest
	if !bindQuery(c, &req) {
		return
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Search videos")
		return
	}

	response.OK(c, "", data)
}

// UploadURL POST /api/videos/upload-url
// @Summary Presigned upload URL
// @Description Returns a PUT URL for direct upload to object storage and the public URL to pass to save.
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.UploadURLRequest true "File"
// @Success 200 {object} response.Response{data=dto.UploadURLData}
// @Failure 503 {object} response.Response "Uploads disabled"
// @Router /videos/upload-url [post]
func (h *VideoHandler) UploadURL(c *gin.Context) {
	var req dto.UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}

	data, err := h.videoService.CreateUploadURL(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Create upload URL")
		return
	}

	response.OK(c, "", data)
}

// Save POST /api/videos/save
// @Summary Save an uploaded video
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.SaveVideoRequest true "Video"
// @Success 201 {object} response.Response{data=dto.SavedVideo}
// @Failure 404 {object} response.Response "User not found"
// @Router /videos/save [post]
func (h *VideoHandler) Save(c *gin.Context) {
	var req dto.SaveVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.videoService.Save(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Save video")
		return
	}

	response.Created(c, "Video saved", saved)
}

// Edit POST /api/videos/edit
// @Summary Edit title and description
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.EditVideoRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Not the owner"
// @Router /videos/edit [post]
func (h *VideoHandler) Edit(c *gin.Context) {
	var req dto.EditVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.videoService.Edit(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Edit video")
		return
	}

	response.OK(c, "Video updated", nil)
}

// Delete POST /api/videos/delete
// @Summary Delete a video
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.VideoActionRequest true "Video and owner"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Not the owner"
// @Router /videos/delete [post]
func (h *VideoHandler) Delete(c *gin.Context) {
	var req dto.VideoActionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Delete video")
		return
	}

	response.OK(c, "Video deleted", nil)
}

// Like POST /api/videos/like
// @Summary Like a video
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.VideoActionRequest true "Video and user"
// @Success 200 {object} response.Response{data=dto.LikeResult}
// @Failure 409 {object} response.Response "Already liked"
// @Router /videos/like [post]
func (h *VideoHandler) Like(c *gin.Context) {
	var req dto.VideoActionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.videoService.Like(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Like video")
		return
	}

	response.OK(c, "Video liked", res)
}

// View POST /api/videos/view
// @Summary Record a view
// @Description Counted at most once per user and video.
// @Tags videos
// @Accept json
// @Produce json
// @Param body body dto.VideoActionRequest true "Video and user"
// @Success 200 {object} response.Response{data=dto.ViewResult}
// @Router /videos/view [post]
func (h *VideoHandler) View(c *gin.Context) {
	var req dto.VideoActionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.videoService.View(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Record view")
		return
	}

	response.OK(c, "", res)
}

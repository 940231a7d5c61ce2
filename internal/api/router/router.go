package router

import (
	"likering/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything Setup registers.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Video    *handler.VideoHandler
	Comment  *handler.CommentHandler
	Relation *handler.RelationHandler
	Message  *handler.MessageHandler
	Health   *handler.HealthHandler
}

// Setup registers every /api route.
func Setup(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	api.GET("/health", h.Health.Health)

	// --- auth ---
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	// --- users ---
	user := api.Group("/user")
	{
		user.GET("/profile", h.User.Profile)
		user.POST("/update-profile-picture", h.User.UpdateProfilePicture)
		user.POST("/update-password", h.User.UpdatePassword)
	}

	// --- videos ---
	videos := api.Group("/videos")
	{
		videos.GET("/all", h.Video.Feed)
		videos.GET("/user", h.Video.ListByUser)
		videos.GET("/liked-by-user", h.Video.ListLiked)
		videos.GET("/search", h.Video.Search)
		videos.POST("/upload-url", h.Video.UploadURL)
		videos.POST("/save", h.Video.Save)
		videos.POST("/edit", h.Video.Edit)
		videos.POST("/delete", h.Video.Delete)
		videos.POST("/like", h.Video.Like)
		videos.POST("/view", h.Video.View)
	}

	// --- comments ---
	comments := api.Group("/comments")
	{
		comments.GET("", h.Comment.List)
		comments.POST("/add", h.Comment.Add)
		comments.POST("/edit", h.Comment.Edit)
		comments.POST("/delete", h.Comment.Delete)
	}

	// --- follows ---
	api.POST("/follow", h.Relation.Follow)
	api.POST("/unfollow", h.Relation.Unfollow)
	api.GET("/follow/check", h.Relation.Check)

	// --- messages ---
	messages := api.Group("/messages")
	{
		messages.GET("", h.Message.Thread)
		messages.GET("/conversations", h.Message.Conversations)
		messages.GET("/stream", h.Message.Stream)
		messages.POST("/send", h.Message.Send)
		messages.POST("/delete", h.Message.Delete)
		messages.POST("/mark-read", h.Message.MarkRead)
	}
}

package dto

import "time"

type AddCommentRequest struct {
	VideoID     string `json:"videoId" binding:"required"`
	Username    string `json:"username" binding:"required"`
	CommentText string `json:"commentText" binding:"required"`
}

type EditCommentRequest struct {
	CommentID string `json:"commentId" binding:"required"`
	Username  string `json:"username" binding:"required"`
	NewText   string `json:"newText" binding:"required"`
}

type DeleteCommentRequest struct {
	CommentID string `json:"commentId" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

type CommentInfo struct {
	CommentID  string    `json:"commentId"`
	VideoID    string    `json:"videoId"`
	Username   string    `json:"username"`
	Text       string    `json:"text"`
	Edited     bool      `json:"edited"`
	ProfileImg string    `json:"profileImg"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreatedComment struct {
	CommentID string `json:"commentId"`
}

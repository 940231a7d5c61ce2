package dto

import "time"

// SaveVideoRequest registers an uploaded video. The Spanish field names are
// what the mobile client sends.
type SaveVideoRequest struct {
	Usuario      string `json:"usuario" binding:"required"`
	VideoURL     string `json:"videoUrl" binding:"required,max=1000"`
	Titulo       string `json:"titulo" binding:"max=255"`
	Descripcion  string `json:"descripcion"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"max=1000"`
	MusicURL     string `json:"musicUrl" binding:"max=1000"`
}

type EditVideoRequest struct {
	VideoID        string `json:"videoId" binding:"required"`
	Username       string `json:"username" binding:"required"`
	NewTitle       string `json:"newTitle" binding:"max=255"`
	NewDescription string `json:"newDescription"`
}

// VideoActionRequest identifies a viewer acting on a video (like, view, delete).
type VideoActionRequest struct {
	VideoID  string `json:"videoId" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type UploadURLRequest struct {
	Usuario     string `json:"usuario" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
}

type UploadURLData struct {
	UploadURL  string `json:"uploadUrl"`
	PublicURL  string `json:"publicUrl"`
	ObjectName string `json:"objectName"`
	ExpiresIn  int    `json:"expiresIn"`
}

type SavedVideo struct {
	VideoID string `json:"videoId"`
}

type LikeResult struct {
	Likes int64 `json:"likes"`
}

type ViewResult struct {
	Views   int64 `json:"views"`
	Counted bool  `json:"counted"`
}

// VideoInfo is a video with its counters.
type VideoInfo struct {
	VideoID      string    `json:"videoId"`
	Username     string    `json:"username"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	MusicURL     string    `json:"musicUrl"`
	Music        string    `json:"music"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	Views        int64     `json:"views"`
	ProfileImg   string    `json:"profileImg,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedVideo is a feed entry annotated for the requesting viewer.
type FeedVideo struct {
	VideoInfo
	IsLikedByCurrentUser bool `json:"isLikedByCurrentUser"`
	IsFollowingUser      bool `json:"isFollowingUser"`
}

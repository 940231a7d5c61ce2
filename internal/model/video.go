package model

import "time"

// Video is an uploaded clip. LikeCount, CommentCount and ViewCount are cached
// projections of video_likes, comments and video_views.
type Video struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Username     string    `gorm:"size:255;not null;index:idx_videos_username" json:"username"`
	Title        string    `gorm:"size:255;not null;default:''" json:"title"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	VideoURL     string    `gorm:"size:1000;not null" json:"video_url"`
	ThumbnailURL string    `gorm:"size:1000;not null;default:''" json:"thumbnail_url"`
	MusicURL     string    `gorm:"size:1000;not null;default:''" json:"music_url"`
	MusicName    string    `gorm:"size:255;not null;default:''" json:"music_name"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_videos_created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

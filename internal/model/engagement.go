package model

import "time"

// VideoLike records that Username liked VideoID. At most one row per pair.
type VideoLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   string    `gorm:"size:64;not null;uniqueIndex:idx_video_likes_pair,priority:1" json:"video_id"`
	Username  string    `gorm:"size:255;not null;uniqueIndex:idx_video_likes_pair,priority:2;index:idx_video_likes_username" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoLike) TableName() string {
	return "video_likes"
}

// VideoView records the first counted view of VideoID by Username.
type VideoView struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   string    `gorm:"size:64;not null;uniqueIndex:idx_video_views_pair,priority:1" json:"video_id"`
	Username  string    `gorm:"size:255;not null;uniqueIndex:idx_video_views_pair,priority:2" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoView) TableName() string {
	return "video_views"
}

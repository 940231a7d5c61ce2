package model

import "time"

// Comment on a video. Edited becomes true on the first edit and stays true.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	VideoID   string    `gorm:"size:64;not null;index:idx_comments_video_created,priority:1" json:"video_id"`
	Username  string    `gorm:"size:255;not null;index:idx_comments_username" json:"username"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Edited    bool      `gorm:"not null;default:false" json:"edited"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

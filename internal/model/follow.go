package model

import "time"

// Follow is a directed edge: FollowerUsername follows FollowingUsername.
type Follow struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerUsername  string    `gorm:"size:255;not null;uniqueIndex:idx_follows_pair,priority:1" json:"follower_username"`
	FollowingUsername string    `gorm:"size:255;not null;uniqueIndex:idx_follows_pair,priority:2;index:idx_follows_following" json:"following_username"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// FeedRow is one feed entry as seen by a particular viewer.
type FeedRow struct {
	ID           string
	Username     string
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	MusicURL     string
	MusicName    string
	LikeCount    int64
	CommentCount int64
	ViewCount    int64
	ProfileImg   string
	CreatedAt    time.Time
	IsLiked      bool
	IsFollowing  bool
}

// feedSQL annotates every video for @viewer. An empty viewer never matches a
// like or follow row. comment_count is recomputed from comments rather than
// read from the cached column.
const feedSQL = `
	SELECT
		v.id,
		v.username,
		v.title,
		v.description,
		v.video_url,
		v.thumbnail_url,
		v.music_url,
		v.music_name,
		v.like_count,
		v.view_count,
		v.created_at,
		COALESCE(c.total, 0) AS comment_count,
		COALESCE(u.image_url, '') AS profile_img,
		(vl.id IS NOT NULL) AS is_liked,
		COALESCE(@viewer <> '' AND EXISTS (
			SELECT 1 FROM follows f
			WHERE f.follower_username = @viewer AND f.following_username = v.username
		), false) AS is_following
	FROM videos v
	LEFT JOIN users u ON u.username = v.username
	LEFT JOIN video_likes vl ON vl.video_id = v.id AND vl.username = @viewer AND @viewer <> ''
	LEFT JOIN (
		SELECT video_id, COUNT(*) AS total FROM comments GROUP BY video_id
	) c ON c.video_id = v.id
	ORDER BY v.created_at DESC, v.id DESC`

// FeedRepository runs the personalized feed query.
type FeedRepository struct {
	db *gorm.DB
}

// NewFeedRepository creates a FeedRepository.
func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// ListFeed returns the global listing newest first, personalised for viewer.
func (r *FeedRepository) ListFeed(ctx context.Context, viewer string) ([]FeedRow, error) {
	rows := make([]FeedRow, 0)
	err := r.db.WithContext(ctx).
		Raw(feedSQL, map[string]interface{}{"viewer": viewer}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

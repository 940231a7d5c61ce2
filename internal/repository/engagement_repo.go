package repository

import (
	"context"

	"gorm.io/gorm"
)

// EngagementRepository records likes and views. The edge insert and the
// counter bump always share one transaction.
type EngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates an EngagementRepository.
func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Like stores the (video, user) edge, bumps the video's like counter and
// returns the new like count. A repeat like
// returns ErrDuplicate and changes nothing.
func (r *EngagementRepository) Like(ctx context.Context, videoID, username string) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			INSERT INTO video_likes (video_id, username, created_at)
			VALUES (?, ?, NOW())
			ON CONFLICT (video_id, username) DO NOTHING`, videoID, username)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDuplicate
		}

		return tx.Raw(`
			UPDATE videos SET like_count = like_count + 1
			WHERE id = ?
			RETURNING like_count`, videoID).Scan(&likes).Error
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// RecordView counts the first view of a video by a user. Repeat views report
// counted=false with the unchanged counter.
func (r *EngagementRepository) RecordView(ctx context.Context, videoID, username string) (int64, bool, error) {
	var views int64
	var counted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			INSERT INTO video_views (video_id, username, created_at)
			VALUES (?, ?, NOW())
			ON CONFLICT (video_id, username) DO NOTHING`, videoID, username)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return tx.Raw("SELECT view_count FROM videos WHERE id = ?", videoID).Scan(&views).Error
		}

		counted = true
		return tx.Raw(`
			UPDATE videos SET view_count = view_count + 1
			WHERE id = ?
			RETURNING view_count`, videoID).Scan(&views).Error
	})
	if err != nil {
		return 0, false, err
	}
	return views, counted, nil
}

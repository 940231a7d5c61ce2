package repository

import (
	"context"
	"time"

	"likering/internal/model"

	"gorm.io/gorm"
)

// CommentRow is a comment joined with its author's avatar.
type CommentRow struct {
	ID         string
	VideoID    string
	Username   string
	Text       string
	Edited     bool
	ProfileImg string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CommentRepository stores comments and keeps videos.comment_count in step.
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a CommentRepository.
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and bumps the video's cached counter.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return translate(err)
		}
		return tx.Model(&model.Video{}).
			Where("id = ?", comment.VideoID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// GetByID returns ErrNotFound for an unknown id.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateText replaces the text and marks the comment as edited.
func (r *CommentRepository) UpdateText(ctx context.Context, id, text string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "edited": true}).Error
}

// Delete removes the comment and decrements the video's counter, never below zero.
func (r *CommentRepository) Delete(ctx context.Context, id, videoID string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Exec(
			"UPDATE videos SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = ?",
			videoID,
		).Error
	})
	return deleted, err
}

// ListByVideo returns a video's comments newest first.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string) ([]CommentRow, error) {
	rows := make([]CommentRow, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id, c.video_id, c.username, c.text, c.edited, c.created_at, c.updated_at,
			COALESCE(u.image_url, '') AS profile_img
		FROM comments c
		LEFT JOIN users u ON u.username = c.username
		WHERE c.video_id = ?
		ORDER BY c.created_at DESC, c.id DESC`, videoID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SyncVideoCount writes an observed comment count back to the cached counter.
func (r *CommentRepository) SyncVideoCount(ctx context.Context, videoID string, count int64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND comment_count <> ?", videoID, count).
		UpdateColumn("comment_count", count).Error
}

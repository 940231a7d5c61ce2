package repository

import (
	"context"
	"strings"

	"likering/internal/model"

	"gorm.io/gorm"
)

// VideoRepository stores videos and their cached counters.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a VideoRepository.
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a video. A duplicate id returns ErrDuplicate.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return translate(r.db.WithContext(ctx).Create(video).Error)
}

// GetByID returns ErrNotFound for an unknown id.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// ListByUser returns a user's uploads newest first with their cached counters.
func (r *VideoRepository) ListByUser(ctx context.Context, username string) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&videos).Error
	return videos, err
}

// ListLikedByUser returns the videos a user liked, most recent like first.
func (r *VideoRepository) ListLikedByUser(ctx context.Context, username string) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Table("videos v").
		Select("v.*").
		Joins("JOIN video_likes l ON l.video_id = v.id").
		Where("l.username = ?", username).
		Order("l.created_at DESC, l.id DESC").
		Scan(&videos).Error
	return videos, err
}

// ListByIDs loads the given videos in no particular order.
func (r *VideoRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}
	var videos []model.Video
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// UpdateDetails replaces title and description.
func (r *VideoRepository) UpdateDetails(ctx context.Context, id, title, description string) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "description": description}).Error
}

// Delete removes the video; likes, views and comments go with it by cascade.
func (r *VideoRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByKeyword matches title, description or owner case-insensitively.
// The keyword is a literal substring.
func (r *VideoRepository) SearchByKeyword(ctx context.Context, keyword string, offset, limit int) ([]model.Video, int64, error) {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("title ILIKE ? OR description ILIKE ? OR username ILIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

const reconcileSQL = `
	UPDATE videos v
	SET like_count = c.likes, comment_count = c.comments, view_count = c.views
	FROM (
		SELECT x.id,
			(SELECT COUNT(*) FROM video_likes l WHERE l.video_id = x.id) AS likes,
			(SELECT COUNT(*) FROM comments cm WHERE cm.video_id = x.id) AS comments,
			(SELECT COUNT(*) FROM video_views w WHERE w.video_id = x.id) AS views
		FROM videos x
	) c
	WHERE c.id = v.id
		AND (v.like_count, v.comment_count, v.view_count) IS DISTINCT FROM (c.likes, c.comments, c.views)`

// ReconcileCounters recomputes one video's cached counters from the join
// tables. It reports whether anything had drifted.
func (r *VideoRepository) ReconcileCounters(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(reconcileSQL+" AND v.id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// ReconcileAll fixes every drifted video and returns how many were touched.
func (r *VideoRepository) ReconcileAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(reconcileSQL)
	return result.RowsAffected, result.Error
}

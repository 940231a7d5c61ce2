package repository

import (
	"context"

	"likering/internal/model"

	"gorm.io/gorm"
)

// RelationRepository stores directed follow edges.
type RelationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a RelationRepository.
func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// Create adds the follow edge. An existing edge yields ErrDuplicate.
func (r *RelationRepository) Create(ctx context.Context, follower, following string) error {
	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO follows (follower_username, following_username, created_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (follower_username, following_username) DO NOTHING`, follower, following)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

// Delete removes the follow edge and reports whether it existed.
func (r *RelationRepository) Delete(ctx context.Context, follower, following string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_username = ? AND following_username = ?", follower, following).
		Delete(&model.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether follower follows following.
func (r *RelationRepository) Exists(ctx context.Context, follower, following string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_username = ? AND following_username = ?", follower, following).
		Count(&count).Error
	return count > 0, err
}

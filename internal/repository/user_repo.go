package repository

import (
	"context"

	"likering/internal/model"

	"gorm.io/gorm"
)

// UserStats aggregates social and content numbers for a profile.
type UserStats struct {
	Followers int64
	Following int64
	Likes     int64
	Posts     int64
}

// UserRepository stores accounts keyed by username.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken username yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetByUsername returns ErrNotFound for an unknown username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword reports false when no such user exists.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, hash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	return result.RowsAffected > 0, result.Error
}

// UpdateImage reports false when no such user exists.
func (r *UserRepository) UpdateImage(ctx context.Context, username, imageURL string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("image_url", imageURL)
	return result.RowsAffected > 0, result.Error
}

// GetStats loads a user with follower, following, like and post totals
// computed from the join tables.
func (r *UserRepository) GetStats(ctx context.Context, username string) (*UserStats, error) {
	var stats UserStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_username = @user) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_username = @user) AS following,
			(SELECT COALESCE(SUM(like_count), 0) FROM videos WHERE username = @user) AS likes,
			(SELECT COUNT(*) FROM videos WHERE username = @user) AS posts
	`, map[string]interface{}{"user": username}).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

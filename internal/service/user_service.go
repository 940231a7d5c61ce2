package service

import (
	"context"
	"errors"
	"strings"

	"likering/internal/api/dto"
	"likering/internal/repository"
)

// UserService serves profile reads.
type UserService struct {
	users UserStore
}

// NewUserService creates a UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the user's profile with follower, following, likes and post totals.
func (s *UserService) Profile(ctx context.Context, username string) (*dto.ProfileStats, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("User is required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.users.GetStats(ctx, username)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileStats{
		UserProfile: *toUserProfile(user),
		Followers:   stats.Followers,
		Following:   stats.Following,
		Likes:       stats.Likes,
		Posts:       stats.Posts,
	}, nil
}

// requireUser maps a missing user onto ErrUserNotFound.
func requireUser(ctx context.Context, users UserStore, username string) error {
	if _, err := users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

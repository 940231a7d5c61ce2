package service

import (
	"context"
	"errors"
	"strings"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/repository"
)

// RelationService manages the directed follow graph between usernames.
type RelationService struct {
	follows FollowStore
	users   UserStore
	events  EventPublisher
}

// NewRelationService creates a RelationService.
func NewRelationService(follows FollowStore, users UserStore) *RelationService {
	return &RelationService{follows: follows, users: users}
}

// WithEvents publishes follow and unfollow events to events.
func (s *RelationService) WithEvents(events EventPublisher) *RelationService {
	s.events = events
	return s
}

// Follow adds the edge follower -> target. Both users must exist; self-follows
// are rejected before any lookup.
func (s *RelationService) Follow(ctx context.Context, req *dto.FollowRequest) (*dto.FollowStatus, error) {
	follower, target, err := followPair(req)
	if err != nil {
		return nil, err
	}
	if follower == target {
		return nil, ErrCannotFollowSelf
	}

	if err := requireUser(ctx, s.users, follower); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, target); err != nil {
		return nil, err
	}

	if err := s.follows.Create(ctx, follower, target); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFollowed
		}
		return nil, err
	}

	publish(ctx, s.events, model.ActivityEvent{Type: model.EventUserFollowed, Username: follower, Target: target})
	return &dto.FollowStatus{IsFollowing: true}, nil
}

// Unfollow removes the edge follower -> target. Removing an edge that does
// not exist is a conflict.
func (s *RelationService) Unfollow(ctx context.Context, req *dto.FollowRequest) (*dto.FollowStatus, error) {
	follower, target, err := followPair(req)
	if err != nil {
		return nil, err
	}
	if follower == target {
		return nil, ErrCannotFollowSelf
	}

	deleted, err := s.follows.Delete(ctx, follower, target)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrNotFollowed
	}

	publish(ctx, s.events, model.ActivityEvent{Type: model.EventUserUnfollowed, Username: follower, Target: target})
	return &dto.FollowStatus{IsFollowing: false}, nil
}

// Status reports whether follower follows target. Unknown users simply do not follow.
func (s *RelationService) Status(ctx context.Context, req *dto.FollowRequest) (*dto.FollowStatus, error) {
	follower, target, err := followPair(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.follows.Exists(ctx, follower, target)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatus{IsFollowing: exists}, nil
}

func followPair(req *dto.FollowRequest) (string, string, error) {
	follower := strings.TrimSpace(req.FollowerUsername)
	target := strings.TrimSpace(req.TargetUsername)
	if follower == "" || target == "" {
		return "", "", invalid("Follower and target usernames are required")
	}
	return follower, target, nil
}

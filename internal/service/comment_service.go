package service

import (
	"context"
	"errors"
	"strings"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/repository"
	"likering/pkg/logger"
	"likering/pkg/utils"

	"go.uber.org/zap"
)

// CommentService manages comments on videos.
type CommentService struct {
	comments CommentStore
	videos   VideoStore
	users    UserStore
	events   EventPublisher
}

// NewCommentService creates a CommentService.
func NewCommentService(comments CommentStore, videos VideoStore, users UserStore) *CommentService {
	return &CommentService{comments: comments, videos: videos, users: users}
}

// WithEvents publishes comment events to events.
func (s *CommentService) WithEvents(events EventPublisher) *CommentService {
	s.events = events
	return s
}

// List returns a video's comments newest first and writes the observed count
// back to the video's cached counter.
func (s *CommentService) List(ctx context.Context, videoID string) ([]dto.CommentInfo, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, invalid("Video ID is required")
	}

	rows, err := s.comments.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.comments.SyncVideoCount(ctx, videoID, int64(len(rows))); err != nil {
		logger.Warn("Failed to sync comment counter", zap.String("video_id", videoID), zap.Error(err))
	}

	comments := make([]dto.CommentInfo, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, dto.CommentInfo{
			CommentID:  row.ID,
			VideoID:    row.VideoID,
			Username:   row.Username,
			Text:       row.Text,
			Edited:     row.Edited,
			ProfileImg: row.ProfileImg,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return comments, nil
}

// Add stores a comment by an existing user on an existing video.
func (s *CommentService) Add(ctx context.Context, req *dto.AddCommentRequest) (*dto.CreatedComment, error) {
	text := strings.TrimSpace(req.CommentText)
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Username) == "" || text == "" {
		return nil, invalid("Video ID, username and comment text are required")
	}
	if err := requireUser(ctx, s.users, req.Username); err != nil {
		return nil, err
	}
	if _, err := s.videos.GetByID(ctx, req.VideoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:       utils.NewID("comment"),
		VideoID:  req.VideoID,
		Username: req.Username,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	publish(ctx, s.events, model.ActivityEvent{Type: model.EventCommentAdded, VideoID: comment.VideoID, Username: comment.Username})
	return &dto.CreatedComment{CommentID: comment.ID}, nil
}

// Edit replaces the text of the author's own comment and marks it edited.
func (s *CommentService) Edit(ctx context.Context, req *dto.EditCommentRequest) error {
	text := strings.TrimSpace(req.NewText)
	if strings.TrimSpace(req.CommentID) == "" || strings.TrimSpace(req.Username) == "" || text == "" {
		return invalid("Comment ID, username and new text are required")
	}

	comment, err := s.authoredComment(ctx, req.CommentID, req.Username)
	if err != nil {
		return err
	}
	return s.comments.UpdateText(ctx, comment.ID, text)
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, req *dto.DeleteCommentRequest) error {
	if strings.TrimSpace(req.CommentID) == "" || strings.TrimSpace(req.Username) == "" {
		return invalid("Comment ID and username are required")
	}

	comment, err := s.authoredComment(ctx, req.CommentID, req.Username)
	if err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, comment.ID, comment.VideoID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}

	publish(ctx, s.events, model.ActivityEvent{Type: model.EventCommentDeleted, VideoID: comment.VideoID, Username: comment.Username})
	return nil
}

func (s *CommentService) authoredComment(ctx context.Context, id, username string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.Username != username {
		return nil, ErrNotCommentAuthor
	}
	return comment, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/repository"
	"likering/pkg/logger"
	"likering/pkg/utils"

	"go.uber.org/zap"
)

// VideoService owns video lifecycle, the feed and likes/views.
type VideoService struct {
	users      UserStore
	videos     VideoStore
	feed       FeedStore
	engagement EngagementStore

	events  EventPublisher
	index   SearchIndex
	uploads UploadSigner
	expiry  time.Duration
	now     func() time.Time
}

// NewVideoService creates a VideoService without optional side channels.
func NewVideoService(users UserStore, videos VideoStore, feed FeedStore, engagement EngagementStore) *VideoService {
	return &VideoService{
		users:      users,
		videos:     videos,
		feed:       feed,
		engagement: engagement,
		now:        time.Now,
	}
}

// WithEvents enables activity events for the counter worker.
func (s *VideoService) WithEvents(events EventPublisher) *VideoService {
	s.events = events
	return s
}

// WithSearchIndex keeps the search index in sync with saves, edits and deletes.
func (s *VideoService) WithSearchIndex(index SearchIndex) *VideoService {
	s.index = index
	return s
}

// WithUploads enables presigned upload URLs valid for expiry.
func (s *VideoService) WithUploads(uploads UploadSigner, expiry time.Duration) *VideoService {
	s.uploads = uploads
	s.expiry = expiry
	return s
}

// Feed lists every video newest first. An empty viewer gets both flags false on every entry.
func (s *VideoService) Feed(ctx context.Context, viewer string) ([]dto.FeedVideo, error) {
	viewer = strings.TrimSpace(viewer)

	rows, err := s.feed.ListFeed(ctx, viewer)
	if err != nil {
		return nil, err
	}

	videos := make([]dto.FeedVideo, 0, len(rows))
	for _, row := range rows {
		entry := dto.FeedVideo{
			VideoInfo: dto.VideoInfo{
				VideoID:      row.ID,
				Username:     row.Username,
				Title:        row.Title,
				Description:  row.Description,
				VideoURL:     row.VideoURL,
				ThumbnailURL: row.ThumbnailURL,
				MusicURL:     row.MusicURL,
				Music:        row.MusicName,
				Likes:        row.LikeCount,
				Comments:     row.CommentCount,
				Views:        row.ViewCount,
				ProfileImg:   row.ProfileImg,
				CreatedAt:    row.CreatedAt,
			},
		}
		if viewer != "" {
			entry.IsLikedByCurrentUser = row.IsLiked
			entry.IsFollowingUser = row.IsFollowing
		}
		videos = append(videos, entry)
	}
	return videos, nil
}

// ListByUser returns a user's uploads with their cached counters.
func (s *VideoService) ListByUser(ctx context.Context, username string) ([]dto.VideoInfo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("User is required")
	}
	videos, err := s.videos.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return toVideoInfos(videos), nil
}

// ListLiked returns the videos a user liked, most recent like first.
func (s *VideoService) ListLiked(ctx context.Context, username string) ([]dto.VideoInfo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("Username is required")
	}
	videos, err := s.videos.ListLikedByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return toVideoInfos(videos), nil
}

// Save registers an uploaded video for its owner.
func (s *VideoService) Save(ctx context.Context, req *dto.SaveVideoRequest) (*dto.SavedVideo, error) {
	owner := strings.TrimSpace(req.Usuario)
	videoURL := strings.TrimSpace(req.VideoURL)
	if owner == "" || videoURL == "" {
		return nil, invalid("User and video URL are required")
	}
	if err := requireUser(ctx, s.users, owner); err != nil {
		return nil, err
	}

	video := &model.Video{
		ID:           utils.NewID("video"),
		Username:     owner,
		Title:        strings.TrimSpace(req.Titulo),
		Description:  strings.TrimSpace(req.Descripcion),
		VideoURL:     videoURL,
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		MusicURL:     strings.TrimSpace(req.MusicURL),
	}
	if video.ThumbnailURL == "" {
		video.ThumbnailURL = videoURL
	}
	if video.MusicURL != "" {
		video.MusicName = fmt.Sprintf("Music %d", s.now().UnixMilli())
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, video)
	publish(ctx, s.events, model.ActivityEvent{Type: model.EventVideoSaved, VideoID: video.ID, Username: owner})

	return &dto.SavedVideo{VideoID: video.ID}, nil
}

// Edit replaces title and description. Only the owner may edit.
func (s *VideoService) Edit(ctx context.Context, req *dto.EditVideoRequest) error {
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Username) == "" {
		return invalid("Video ID and username are required")
	}

	video, err := s.ownedVideo(ctx, req.VideoID, req.Username)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(req.NewTitle)
	description := strings.TrimSpace(req.NewDescription)
	if err := s.videos.UpdateDetails(ctx, video.ID, title, description); err != nil {
		return err
	}

	video.Title = title
	video.Description = description
	s.syncIndex(ctx, video)
	return nil
}

// Delete removes a video and, by cascade, its likes, views and comments.
func (s *VideoService) Delete(ctx context.Context, req *dto.VideoActionRequest) error {
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Username) == "" {
		return invalid("Video ID and username are required")
	}

	video, err := s.ownedVideo(ctx, req.VideoID, req.Username)
	if err != nil {
		return err
	}

	deleted, err := s.videos.Delete(ctx, video.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVideoNotFound
	}

	if s.index != nil {
		if err := s.index.RemoveVideo(ctx, video.ID); err != nil {
			logger.Warn("Failed to remove video from search index", zap.String("video_id", video.ID), zap.Error(err))
		}
	}
	publish(ctx, s.events, model.ActivityEvent{Type: model.EventVideoDeleted, VideoID: video.ID, Username: req.Username})
	return nil
}

// Like records a first like and returns the new counter. A repeat fails with ErrAlreadyLiked.
func (s *VideoService) Like(ctx context.Context, req *dto.VideoActionRequest) (*dto.LikeResult, error) {
	if err := s.checkAction(ctx, req); err != nil {
		return nil, err
	}

	likes, err := s.engagement.Like(ctx, req.VideoID, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}

	publish(ctx, s.events, model.ActivityEvent{Type: model.EventVideoLiked, VideoID: req.VideoID, Username: req.Username})
	return &dto.LikeResult{Likes: likes}, nil
}

// View counts at most one view per user and video. Repeats succeed with the unchanged counter.
func (s *VideoService) View(ctx context.Context, req *dto.VideoActionRequest) (*dto.ViewResult, error) {
	if err := s.checkAction(ctx, req); err != nil {
		return nil, err
	}

	views, counted, err := s.engagement.RecordView(ctx, req.VideoID, req.Username)
	if err != nil {
		return nil, err
	}

	if counted {
		publish(ctx, s.events, model.ActivityEvent{Type: model.EventVideoViewed, VideoID: req.VideoID, Username: req.Username})
	}
	return &dto.ViewResult{Views: views, Counted: counted}, nil
}

// CreateUploadURL returns a presigned PUT URL and the public URL to pass to Save afterwards.
func (s *VideoService) CreateUploadURL(ctx context.Context, req *dto.UploadURLRequest) (*dto.UploadURLData, error) {
	if s.uploads == nil {
		return nil, ErrUploadDisabled
	}
	owner := strings.TrimSpace(req.Usuario)
	if owner == "" || strings.TrimSpace(req.FileName) == "" {
		return nil, invalid("User and file name are required")
	}
	if err := requireUser(ctx, s.users, owner); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}
	objectName := fmt.Sprintf("%s/%s%s", owner, utils.NewID("upload"), strings.ToLower(path.Ext(req.FileName)))

	uploadURL, publicURL, err := s.uploads.PresignUpload(ctx, objectName, contentType)
	if err != nil {
		return nil, err
	}

	return &dto.UploadURLData{
		UploadURL:  uploadURL,
		PublicURL:  publicURL,
		ObjectName: objectName,
		ExpiresIn:  int(s.expiry.Seconds()),
	}, nil
}

func (s *VideoService) checkAction(ctx context.Context, req *dto.VideoActionRequest) error {
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Username) == "" {
		return invalid("Video ID and username are required")
	}
	if err := requireUser(ctx, s.users, req.Username); err != nil {
		return err
	}
	_, err := s.getVideo(ctx, req.VideoID)
	return err
}

func (s *VideoService) getVideo(ctx context.Context, id string) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, id, username string) (*model.Video, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.Username != username {
		return nil, ErrNotVideoOwner
	}
	return video, nil
}

func (s *VideoService) syncIndex(ctx context.Context, video *model.Video) {
	if s.index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideChannelTimeout)
	defer cancel()
	if err := s.index.IndexVideo(ctx, video); err != nil {
		logger.Warn("Failed to index video", zap.String("video_id", video.ID), zap.Error(err))
	}
}

func toVideoInfo(v *model.Video) dto.VideoInfo {
	return dto.VideoInfo{
		VideoID:      v.ID,
		Username:     v.Username,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		MusicURL:     v.MusicURL,
		Music:        v.MusicName,
		Likes:        v.LikeCount,
		Comments:     v.CommentCount,
		Views:        v.ViewCount,
		CreatedAt:    v.CreatedAt,
	}
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	infos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		infos = append(infos, toVideoInfo(&videos[i]))
	}
	return infos
}

package service

import (
	"context"

	"likering/internal/model"
	"likering/internal/repository"
)

// Store interfaces are satisfied by the gorm repositories and by memstore.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, username, hash string) (bool, error)
	UpdateImage(ctx context.Context, username, imageURL string) (bool, error)
	GetStats(ctx context.Context, username string) (*repository.UserStats, error)
}

type VideoStore interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	ListByUser(ctx context.Context, username string) ([]model.Video, error)
	ListLikedByUser(ctx context.Context, username string) ([]model.Video, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Video, error)
	UpdateDetails(ctx context.Context, id, title, description string) error
	Delete(ctx context.Context, id string) (bool, error)
	SearchByKeyword(ctx context.Context, keyword string, offset, limit int) ([]model.Video, int64, error)
	ReconcileCounters(ctx context.Context, id string) (bool, error)
	ReconcileAll(ctx context.Context) (int64, error)
}

type FeedStore interface {
	ListFeed(ctx context.Context, viewer string) ([]repository.FeedRow, error)
}

type EngagementStore interface {
	Like(ctx context.Context, videoID, username string) (int64, error)
	RecordView(ctx context.Context, videoID, username string) (int64, bool, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id, videoID string) (bool, error)
	ListByVideo(ctx context.Context, videoID string) ([]repository.CommentRow, error)
	SyncVideoCount(ctx context.Context, videoID string, count int64) error
}

type FollowStore interface {
	Create(ctx context.Context, follower, following string) error
	Delete(ctx context.Context, follower, following string) (bool, error)
	Exists(ctx context.Context, follower, following string) (bool, error)
}

type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	ListBetween(ctx context.Context, user1, user2 string) ([]model.Message, error)
	ListConversations(ctx context.Context, username string) ([]repository.ConversationRow, error)
	DeleteUnread(ctx context.Context, id, from string) (bool, error)
	MarkRead(ctx context.Context, from, to string) (int64, error)
}

// EventPublisher ships activity events to the counter worker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

// SearchIndex is a full-text index over videos.
type SearchIndex interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	RemoveVideo(ctx context.Context, id string) error
	SearchVideoIDs(ctx context.Context, query string, offset, limit int) ([]string, int64, error)
}

// UploadSigner issues direct-to-storage upload URLs.
type UploadSigner interface {
	PresignUpload(ctx context.Context, objectName, contentType string) (uploadURL, publicURL string, err error)
}

// MessageNotifier pushes a freshly sent message to the recipient's live connections.
type MessageNotifier interface {
	NotifyMessage(ctx context.Context, msg *model.Message) error
}

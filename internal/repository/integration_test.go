//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"likering/internal/infra/database"
	"likering/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=password dbname=testdb sslmode=disable", host, port.Int())

	var db *gorm.DB
	for i := 0; i < 10; i++ {
		db, err = database.Open(dsn)
		if err == nil {
			if sqlDB, pingErr := db.DB(); pingErr == nil && sqlDB.Ping() == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	teardown := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		container.Terminate(context.Background())
	}

	return db, teardown
}

type fixture struct {
	db       *gorm.DB
	users    *UserRepository
	videos   *VideoRepository
	feed     *FeedRepository
	engage   *EngagementRepository
	comments *CommentRepository
	follows  *RelationRepository
	messages *MessageRepository
}

func newFixture(db *gorm.DB) *fixture {
	return &fixture{
		db:       db,
		users:    NewUserRepository(db),
		videos:   NewVideoRepository(db),
		feed:     NewFeedRepository(db),
		engage:   NewEngagementRepository(db),
		comments: NewCommentRepository(db),
		follows:  NewRelationRepository(db),
		messages: NewMessageRepository(db),
	}
}

func (f *fixture) user(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &model.User{
		Username:     name,
		PasswordHash: "hash",
		ImageURL:     name + ".png",
	}))
}

func (f *fixture) video(t *testing.T, id, owner string, at time.Time) {
	t.Helper()
	require.NoError(t, f.videos.Create(context.Background(), &model.Video{
		ID:        id,
		Username:  owner,
		VideoURL:  "https://cdn/" + id + ".mp4",
		CreatedAt: at,
	}))
}

func TestIntegration_Feed(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()
	f := newFixture(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	f.video(t, "video_bob", "bob", base)
	f.video(t, "video_carol", "carol", base.Add(time.Minute))

	_, err := f.engage.Like(ctx, "video_bob", "alice")
	require.NoError(t, err)
	require.NoError(t, f.follows.Create(ctx, "alice", "bob"))
	require.NoError(t, f.comments.Create(ctx, &model.Comment{ID: "comment_1", VideoID: "video_bob", Username: "carol", Text: "hey"}))

	// drift the cached counter; the feed must still show the real count
	require.NoError(t, db.Exec("UPDATE videos SET comment_count = 42 WHERE id = 'video_bob'").Error)

	t.Run("concrete viewer", func(t *testing.T) {
		rows, err := f.feed.ListFeed(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "video_carol", rows[0].ID, "newest first")
		assert.False(t, rows[0].IsLiked)
		assert.False(t, rows[0].IsFollowing)

		assert.Equal(t, "video_bob", rows[1].ID)
		assert.True(t, rows[1].IsLiked)
		assert.True(t, rows[1].IsFollowing)
		assert.Equal(t, int64(1), rows[1].CommentCount)
		assert.Equal(t, int64(1), rows[1].LikeCount)
		assert.Equal(t, "bob.png", rows[1].ProfileImg)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		rows, err := f.feed.ListFeed(ctx, "")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.False(t, row.IsLiked, row.ID)
			assert.False(t, row.IsFollowing, row.ID)
		}
	})

	t.Run("user listing keeps the cached counter", func(t *testing.T) {
		videos, err := f.videos.ListByUser(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, int64(42), videos[0].CommentCount)
	})
}

func TestIntegration_Counters(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()
	f := newFixture(db)
	ctx := context.Background()

	f.user(t, "alice")
	f.user(t, "bob")
	f.video(t, "video_1", "bob", time.Now())

	likes, err := f.engage.Like(ctx, "video_1", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	_, err = f.engage.Like(ctx, "video_1", "alice")
	assert.ErrorIs(t, err, ErrDuplicate)

	for i := 0; i < 3; i++ {
		views, counted, err := f.engage.RecordView(ctx, "video_1", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), views)
		assert.Equal(t, i == 0, counted)
	}

	video, err := f.videos.GetByID(ctx, "video_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.LikeCount)
	assert.Equal(t, int64(1), video.ViewCount)

	owner, err := f.users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, owner.LikesEarned)

	require.NoError(t, f.comments.Create(ctx, &model.Comment{ID: "comment_1", VideoID: "video_1", Username: "alice", Text: "x"}))
	require.NoError(t, db.Exec("UPDATE videos SET comment_count = 0 WHERE id = 'video_1'").Error)

	deleted, err := f.comments.Delete(ctx, "comment_1", "video_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	video, err = f.videos.GetByID(ctx, "video_1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), video.CommentCount, "floored at zero")

	require.NoError(t, db.Exec("UPDATE videos SET like_count = 9, view_count = 9 WHERE id = 'video_1'").Error)
	fixed, err := f.videos.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	video, err = f.videos.GetByID(ctx, "video_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.LikeCount)
	assert.Equal(t, int64(1), video.ViewCount)

	gone, err := f.videos.Delete(ctx, "video_1")
	require.NoError(t, err)
	assert.True(t, gone)

	var remaining int64
	require.NoError(t, db.Model(&model.VideoLike{}).Where("video_id = ?", "video_1").Count(&remaining).Error)
	assert.Zero(t, remaining, "likes cascade with the video")
}

func TestIntegration_Follows(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()
	f := newFixture(db)
	ctx := context.Background()

	f.user(t, "alice")
	f.user(t, "bob")

	require.NoError(t, f.follows.Create(ctx, "alice", "bob"))
	assert.ErrorIs(t, f.follows.Create(ctx, "alice", "bob"), ErrDuplicate)
	assert.Error(t, f.follows.Create(ctx, "alice", "alice"), "check constraint rejects self-follow")

	stats, err := f.users.GetStats(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Followers)
	assert.Equal(t, int64(0), stats.Following)

	removed, err := f.follows.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = f.follows.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.ErrorIs(t, f.users.Create(ctx, &model.User{Username: "alice", PasswordHash: "x"}), ErrDuplicate)
}

func TestIntegration_Conversations(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()
	f := newFixture(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		f.user(t, name)
	}

	base := time.Now().Add(-time.Hour).UTC()
	send := func(id, from, to string, offset time.Duration) {
		require.NoError(t, f.messages.Create(ctx, &model.Message{
			ID: id, FromUsername: from, ToUsername: to, Text: id, CreatedAt: base.Add(offset),
		}))
	}
	send("msg_1", "bob", "alice", 0)
	send("msg_2", "bob", "alice", time.Minute)
	send("msg_3", "alice", "bob", 2*time.Minute)
	send("msg_4", "alice", "carol", 3*time.Minute)
	send("msg_5", "alice", "carol", 4*time.Minute)

	rows, err := f.messages.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "carol", rows[0].Peer)
	assert.Equal(t, "msg_5", rows[0].LastText)
	assert.Equal(t, "alice", rows[0].LastFrom)
	assert.Equal(t, int64(0), rows[0].UnreadCount, "messages sent by alice are never unread for her")
	assert.Equal(t, "carol.png", rows[0].ImageURL)

	assert.Equal(t, "bob", rows[1].Peer)
	assert.Equal(t, "msg_3", rows[1].LastText)
	assert.Equal(t, int64(2), rows[1].UnreadCount)

	marked, err := f.messages.MarkRead(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	rows, err = f.messages.ListConversations(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[1].UnreadCount)

	deleted, err := f.messages.DeleteUnread(ctx, "msg_1", "bob")
	require.NoError(t, err)
	assert.False(t, deleted, "read messages stay")

	thread, err := f.messages.ListBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "msg_1", thread[0].ID)
	assert.True(t, thread[0].IsRead)
	assert.NotNil(t, thread[0].ReadAt)
}

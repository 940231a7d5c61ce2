package service_test

import (
	"context"
	"strings"
	"testing"

	"likering/internal/api/dto"
	"likering/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice", "bob")
	id := f.saveVideo(t, "alice", "clip")

	first, err := f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: id, Username: "bob", CommentText: " first "})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.CommentID, "comment_"))
	_, err = f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: id, Username: "alice", CommentText: "second"})
	require.NoError(t, err)

	list, err := f.comments.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text, "newest first")
	assert.Equal(t, "first", list[1].Text)
	assert.Equal(t, "https://cdn.example.com/bob.png", list[1].ProfileImg)

	err = f.comments.Edit(ctx, &dto.EditCommentRequest{CommentID: first.CommentID, Username: "alice", NewText: "hijack"})
	assert.ErrorIs(t, err, service.ErrNotCommentAuthor)

	require.NoError(t, f.comments.Edit(ctx, &dto.EditCommentRequest{CommentID: first.CommentID, Username: "bob", NewText: "edited"}))
	list, err = f.comments.List(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited", list[1].Text)
	assert.True(t, list[1].Edited)
	assert.False(t, list[0].Edited)

	err = f.comments.Delete(ctx, &dto.DeleteCommentRequest{CommentID: first.CommentID, Username: "alice"})
	assert.ErrorIs(t, err, service.ErrNotCommentAuthor)
	require.NoError(t, f.comments.Delete(ctx, &dto.DeleteCommentRequest{CommentID: first.CommentID, Username: "bob"}))

	err = f.comments.Delete(ctx, &dto.DeleteCommentRequest{CommentID: first.CommentID, Username: "bob"})
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	video, err := f.store.Videos().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.CommentCount)
}

func TestCommentService_AddValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	id := f.saveVideo(t, "alice", "clip")

	_, err := f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: id, Username: "alice", CommentText: "   "})
	requireKind(t, err, service.KindValidation)

	_, err = f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: "video_missing", Username: "alice", CommentText: "hi"})
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	_, err = f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: id, Username: "ghost", CommentText: "hi"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestCommentService_ListHealsCounter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	id := f.saveVideo(t, "alice", "clip")
	_, err := f.comments.Add(ctx, &dto.AddCommentRequest{VideoID: id, Username: "alice", CommentText: "hi"})
	require.NoError(t, err)

	f.store.SetVideoCounters(id, 0, 42, 0)

	_, err = f.comments.List(ctx, id)
	require.NoError(t, err)

	video, err := f.store.Videos().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.CommentCount)
}

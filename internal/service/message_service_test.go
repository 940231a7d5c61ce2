package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*model.Message
	err  error
}

func (n *recordingNotifier) NotifyMessage(_ context.Context, msg *model.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

func send(t *testing.T, f *fixture, from, to, text string) string {
	t.Helper()
	sent, err := f.messages.Send(context.Background(), &dto.SendMessageRequest{From: from, To: to, Message: text})
	require.NoError(t, err)
	return sent.MessageID
}

func TestMessageService_SendAndThread(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice", "bob", "carol")
	notifier := &recordingNotifier{err: errBoom}
	f.messages.WithNotifier(notifier)

	id := send(t, f, "alice", "bob", "hi")
	assert.True(t, strings.HasPrefix(id, "msg_"))
	send(t, f, "bob", "alice", "hello")
	send(t, f, "alice", "carol", "unrelated")

	require.Len(t, notifier.sent, 3, "notifier failures do not fail the send")
	assert.Equal(t, "bob", notifier.sent[0].ToUsername)

	thread, err := f.messages.Thread(ctx, "bob", "alice")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Text, "oldest first")
	assert.Equal(t, "hello", thread[1].Text)

	_, err = f.messages.Send(ctx, &dto.SendMessageRequest{From: "alice", To: "ghost", Message: "hi"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	_, err = f.messages.Send(ctx, &dto.SendMessageRequest{From: "alice", To: "bob", Message: " "})
	requireKind(t, err, service.KindValidation)
}

func TestMessageService_DeleteRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice", "bob")

	unread := send(t, f, "alice", "bob", "oops")
	err := f.messages.Delete(ctx, &dto.DeleteMessageRequest{MessageID: unread, Username: "bob"})
	assert.ErrorIs(t, err, service.ErrNotMessageSender)
	require.NoError(t, f.messages.Delete(ctx, &dto.DeleteMessageRequest{MessageID: unread, Username: "alice"}))

	err = f.messages.Delete(ctx, &dto.DeleteMessageRequest{MessageID: unread, Username: "alice"})
	assert.ErrorIs(t, err, service.ErrMessageNotFound)

	read := send(t, f, "alice", "bob", "seen")
	res, err := f.messages.MarkRead(ctx, &dto.MarkReadRequest{From: "alice", To: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Marked)

	err = f.messages.Delete(ctx, &dto.DeleteMessageRequest{MessageID: read, Username: "alice"})
	assert.ErrorIs(t, err, service.ErrMessageAlreadyRead)
}

func TestMessageService_MarkReadIsDirectional(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice", "bob")
	send(t, f, "alice", "bob", "one")
	send(t, f, "bob", "alice", "two")

	res, err := f.messages.MarkRead(ctx, &dto.MarkReadRequest{From: "alice", To: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Marked)

	thread, err := f.messages.Thread(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, thread[0].IsRead)
	assert.NotNil(t, thread[0].ReadAt)
	assert.False(t, thread[1].IsRead)

	res, err = f.messages.MarkRead(ctx, &dto.MarkReadRequest{From: "alice", To: "bob"})
	require.NoError(t, err)
	assert.Zero(t, res.Marked)
}

func TestMessageService_Conversations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice", "bob", "carol")

	send(t, f, "bob", "alice", "b1")
	send(t, f, "bob", "alice", "b2")
	send(t, f, "carol", "alice", "c1")
	send(t, f, "alice", "carol", "reply")

	convs, err := f.messages.Conversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)

	assert.Equal(t, "carol", convs[0].Peer)
	assert.Equal(t, "reply", convs[0].LastMessage.Text)
	assert.Equal(t, "alice", convs[0].LastMessage.From)
	assert.Equal(t, int64(1), convs[0].UnreadCount)
	assert.Equal(t, "https://cdn.example.com/carol.png", convs[0].ImageURL)

	assert.Equal(t, "bob", convs[1].Peer)
	assert.Equal(t, "b2", convs[1].LastMessage.Text)
	assert.Equal(t, int64(2), convs[1].UnreadCount)
	assert.NotEmpty(t, convs[1].LastMessage.Timestamp)

	bobView, err := f.messages.Conversations(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobView, 1)
	assert.Zero(t, bobView[0].UnreadCount, "messages bob sent are never unread for bob")
}

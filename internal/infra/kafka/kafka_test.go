package kafka

import (
	"testing"
	"time"

	"likering/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent_KeysByVideo(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg, err := encodeEvent(&model.ActivityEvent{Type: model.EventVideoLiked, VideoID: "video_1", Username: "bob", OccurredAt: at})
	require.NoError(t, err)
	assert.Equal(t, "video_1", string(msg.Key))

	event, err := decodeEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, model.EventVideoLiked, event.Type)
	assert.Equal(t, "bob", event.Username)
	assert.True(t, at.Equal(event.OccurredAt))
}

func TestEncodeEvent_FollowKeysByUser(t *testing.T) {
	msg, err := encodeEvent(&model.ActivityEvent{Type: model.EventUserFollowed, Username: "bob", Target: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "user-bob", string(msg.Key))
}

func TestDecodeEvent_Rejects(t *testing.T) {
	_, err := decodeEvent([]byte("{"))
	assert.Error(t, err)

	_, err = decodeEvent([]byte(`{"video_id":"video_1"}`))
	assert.Error(t, err)
}

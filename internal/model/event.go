package model

import "time"

// Activity event types published after writes that touch video counters.
const (
	EventVideoSaved     = "video.saved"
	EventVideoDeleted   = "video.deleted"
	EventVideoLiked     = "video.liked"
	EventVideoViewed    = "video.viewed"
	EventCommentAdded   = "comment.added"
	EventCommentDeleted = "comment.deleted"
	EventUserFollowed   = "user.followed"
	EventUserUnfollowed = "user.unfollowed"
)

// ActivityEvent describes a write. VideoID is empty for follow events.
type ActivityEvent struct {
	Type       string    `json:"type"`
	VideoID    string    `json:"video_id,omitempty"`
	Username   string    `json:"username"`
	Target     string    `json:"target,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

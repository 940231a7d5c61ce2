package dto

import "time"

type SendMessageRequest struct {
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type DeleteMessageRequest struct {
	MessageID string `json:"messageId" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

type MarkReadRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type SentMessage struct {
	MessageID string `json:"messageId"`
}

type MarkReadResult struct {
	Marked int64 `json:"marked"`
}

type MessageInfo struct {
	MessageID string     `json:"messageId"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Text      string     `json:"text"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

type LastMessage struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
}

// Conversation is one row of a user's inbox.
type Conversation struct {
	Peer        string      `json:"peer"`
	LastMessage LastMessage `json:"lastMessage"`
	UnreadCount int64       `json:"unreadCount"`
	ImageURL    string      `json:"imageUrl"`
}

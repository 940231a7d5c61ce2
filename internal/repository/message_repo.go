package repository

import (
	"context"
	"time"

	"likering/internal/model"

	"gorm.io/gorm"
)

// ConversationRow summarises one peer in a user's inbox.
type ConversationRow struct {
	Peer        string
	LastText    string
	LastAt      time.Time
	LastFrom    string
	UnreadCount int64
	ImageURL    string
}

// conversationsSQL keeps the newest message per peer and counts unread
// messages addressed to @user, grouped by sender.
const conversationsSQL = `
	WITH thread AS (
		SELECT m.id, m.from_username, m.text, m.created_at,
			CASE WHEN m.from_username = @user THEN m.to_username ELSE m.from_username END AS peer
		FROM messages m
		WHERE m.from_username = @user OR m.to_username = @user
	),
	ranked AS (
		SELECT t.*,
			ROW_NUMBER() OVER (PARTITION BY t.peer ORDER BY t.created_at DESC, t.id DESC) AS rn
		FROM thread t
	),
	unread AS (
		SELECT from_username AS peer, COUNT(*) AS total
		FROM messages
		WHERE to_username = @user AND is_read = false
		GROUP BY from_username
	)
	SELECT
		r.peer,
		r.text AS last_text,
		r.created_at AS last_at,
		r.from_username AS last_from,
		COALESCE(un.total, 0) AS unread_count,
		COALESCE(u.image_url, '') AS image_url
	FROM ranked r
	LEFT JOIN unread un ON un.peer = r.peer
	LEFT JOIN users u ON u.username = r.peer
	WHERE r.rn = 1
	ORDER BY r.created_at DESC, r.peer`

// MessageRepository stores direct messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts an unread message.
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error)
}

// GetByID returns ErrNotFound for an unknown id.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListBetween returns the messages exchanged by two users in chronological order.
func (r *MessageRepository) ListBetween(ctx context.Context, user1, user2 string) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	err := r.db.WithContext(ctx).
		Where("(from_username = ? AND to_username = ?) OR (from_username = ? AND to_username = ?)",
			user1, user2, user2, user1).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// ListConversations returns one row per peer of username, newest thread
// first, with the latest message and the count of unread messages to username.
func (r *MessageRepository) ListConversations(ctx context.Context, username string) ([]ConversationRow, error) {
	rows := make([]ConversationRow, 0)
	err := r.db.WithContext(ctx).
		Raw(conversationsSQL, map[string]interface{}{"user": username}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteUnread deletes the message only if from sent it and it is still unread.
func (r *MessageRepository) DeleteUnread(ctx context.Context, id, from string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND from_username = ? AND is_read = ?", id, from, false).
		Delete(&model.Message{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkRead marks every unread message from -> to as read and returns how many changed.
func (r *MessageRepository) MarkRead(ctx context.Context, from, to string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("from_username = ? AND to_username = ? AND is_read = ?", from, to, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": gorm.Expr("NOW()")})
	return result.RowsAffected, result.Error
}

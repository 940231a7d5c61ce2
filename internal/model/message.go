package model

import "time"

// Message is a direct message. It can be deleted by its sender only while unread.
type Message struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	FromUsername string     `gorm:"size:255;not null;index:idx_messages_from_to,priority:1" json:"from_username"`
	ToUsername   string     `gorm:"size:255;not null;index:idx_messages_from_to,priority:2;index:idx_messages_to_read,priority:1" json:"to_username"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	IsRead       bool       `gorm:"not null;default:false;index:idx_messages_to_read,priority:2" json:"is_read"`
	ReadAt       *time.Time `json:"read_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index:idx_messages_created_at" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// All lists every persisted model in creation order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&VideoLike{},
		&VideoView{},
		&Comment{},
		&Follow{},
		&Message{},
	}
}

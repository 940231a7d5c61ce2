package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/repository"
	"likering/pkg/logger"
	"likering/pkg/utils"

	"go.uber.org/zap"
)

// MessageService manages direct messages between users.
type MessageService struct {
	messages MessageStore
	users    UserStore
	notifier MessageNotifier
}

// NewMessageService creates a MessageService.
func NewMessageService(messages MessageStore, users UserStore) *MessageService {
	return &MessageService{messages: messages, users: users}
}

// WithNotifier pushes sent messages to the recipient's live connections.
func (s *MessageService) WithNotifier(notifier MessageNotifier) *MessageService {
	s.notifier = notifier
	return s
}

// Send stores a message from one existing user to another and notifies the
// recipient. Notification failures are logged only.
func (s *MessageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.SentMessage, error) {
	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	text := strings.TrimSpace(req.Message)
	if from == "" || to == "" || text == "" {
		return nil, invalid("Sender, recipient and message are required")
	}
	if err := requireUser(ctx, s.users, from); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, to); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ID:           utils.NewID("msg"),
		FromUsername: from,
		ToUsername:   to,
		Text:         text,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideChannelTimeout)
		defer cancel()
		if err := s.notifier.NotifyMessage(nctx, msg); err != nil {
			logger.Warn("Failed to notify recipient", zap.String("to", to), zap.Error(err))
		}
	}

	return &dto.SentMessage{MessageID: msg.ID}, nil
}

// Thread returns the messages between two users, oldest first.
func (s *MessageService) Thread(ctx context.Context, user1, user2 string) ([]dto.MessageInfo, error) {
	user1, user2 = strings.TrimSpace(user1), strings.TrimSpace(user2)
	if user1 == "" || user2 == "" {
		return nil, invalid("Both users are required")
	}

	messages, err := s.messages.ListBetween(ctx, user1, user2)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.MessageInfo, 0, len(messages))
	for _, m := range messages {
		infos = append(infos, ToMessageInfo(&m))
	}
	return infos, nil
}

// Conversations returns one entry per peer, most recently active first.
func (s *MessageService) Conversations(ctx context.Context, username string) ([]dto.Conversation, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("User is required")
	}

	rows, err := s.messages.ListConversations(ctx, username)
	if err != nil {
		return nil, err
	}

	conversations := make([]dto.Conversation, 0, len(rows))
	for _, row := range rows {
		conversations = append(conversations, dto.Conversation{
			Peer: row.Peer,
			LastMessage: dto.LastMessage{
				Text:      row.LastText,
				Timestamp: row.LastAt.UTC().Format(time.RFC3339Nano),
				From:      row.LastFrom,
			},
			UnreadCount: row.UnreadCount,
			ImageURL:    row.ImageURL,
		})
	}
	return conversations, nil
}

// Delete removes a message. Only its sender may do so, and only while it is unread.
func (s *MessageService) Delete(ctx context.Context, req *dto.DeleteMessageRequest) error {
	if strings.TrimSpace(req.MessageID) == "" || strings.TrimSpace(req.Username) == "" {
		return invalid("Message ID and username are required")
	}

	msg, err := s.messages.GetByID(ctx, req.MessageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.FromUsername != req.Username {
		return ErrNotMessageSender
	}
	if msg.IsRead {
		return ErrMessageAlreadyRead
	}

	deleted, err := s.messages.DeleteUnread(ctx, msg.ID, req.Username)
	if err != nil {
		return err
	}
	if !deleted {
		// read between the lookup and the delete
		return ErrMessageAlreadyRead
	}
	return nil
}

// MarkRead marks every unread message from -> to as read.
func (s *MessageService) MarkRead(ctx context.Context, req *dto.MarkReadRequest) (*dto.MarkReadResult, error) {
	from, to := strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if from == "" || to == "" {
		return nil, invalid("Sender and recipient are required")
	}

	marked, err := s.messages.MarkRead(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadResult{Marked: marked}, nil
}

// ToMessageInfo converts a stored message to its wire form.
func ToMessageInfo(m *model.Message) dto.MessageInfo {
	return dto.MessageInfo{
		MessageID: m.ID,
		From:      m.FromUsername,
		To:        m.ToUsername,
		Text:      m.Text,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

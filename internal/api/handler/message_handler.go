package handler

import (
	"strings"

	"likering/internal/api/dto"
	"likering/internal/api/response"
	"likering/internal/realtime"
	"likering/internal/service"
	"likering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler serves direct messages and the live message stream.
type MessageHandler struct {
	messageService *service.MessageService
	hub            *realtime.Hub
}

// NewMessageHandler creates a MessageHandler. Stream connections join hub.
func NewMessageHandler(messageService *service.MessageService, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		hub:            hub,
	}
}

// Conversations GET /api/messages/conversations
// @Summary Inbox
// @Description One entry per peer with the latest message and the number of unread messages from that peer.
// @Tags messages
// @Produce json
// @Param user query string true "Username"
// @Success 200 {object} response.Response{data=[]dto.Conversation}
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := h.messageService.Conversations(c.Request.Context(), c.Query("user"))
	if err != nil {
		handleListError(c, err, "List conversations")
		return
	}

	response.OK(c, "", conversations)
}

// Thread GET /api/messages
// @Summary Messages between two users
// @Tags messages
// @Produce json
// @Param user1 query string true "First user"
// @Param user2 query string true "Second user"
// @Success 200 {object} response.Response{data=[]dto.MessageInfo}
// @Router /messages [get]
func (h *MessageHandler) Thread(c *gin.Context) {
	messages, err := h.messageService.Thread(c.Request.Context(), c.Query("user1"), c.Query("user2"))
	if err != nil {
		handleListError(c, err, "List messages")
		return
	}

	response.OK(c, "", messages)
}

// Send POST /api/messages/send
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param body body dto.SendMessageRequest true "Message"
// @Success 201 {object} response.Response{data=dto.SentMessage}
// @Failure 404 {object} response.Response "User not found"
// @Router /messages/send [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	sent, err := h.messageService.Send(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Send message")
		return
	}

	response.Created(c, "Message sent", sent)
}

// Delete POST /api/messages/delete
// @Summary Delete an unread message
// @Tags messages
// @Accept json
// @Produce json
// @Param body body dto.DeleteMessageRequest true "Message"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Not the sender or already read"
// @Router /messages/delete [post]
func (h *MessageHandler) Delete(c *gin.Context) {
	var req dto.DeleteMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "Delete message")
		return
	}

	response.OK(c, "Message deleted", nil)
}

// MarkRead POST /api/messages/mark-read
// @Summary Mark a thread read
// @Tags messages
// @Accept json
// @Produce json
// @Param body body dto.MarkReadRequest true "Direction"
// @Success 200 {object} response.Response{data=dto.MarkReadResult}
// @Router /messages/mark-read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.messageService.MarkRead(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Mark messages read")
		return
	}

	response.OK(c, "", res)
}

// Stream GET /api/messages/stream
// @Summary Live message events
// @Description Websocket that receives an event for every message sent to user.
// @Tags messages
// @Param user query string true "Username"
// @Success 101 "Switching protocols"
// @Failure 400 {object} response.Response
// @Router /messages/stream [get]
func (h *MessageHandler) Stream(c *gin.Context) {
	user := strings.TrimSpace(c.Query("user"))
	if user == "" {
		response.BadRequest(c, "User is required")
		return
	}

	if err := realtime.Serve(h.hub, c.Writer, c.Request, user); err != nil {
		// the upgrader has already written the error response
		logger.Warn("Websocket upgrade failed", zap.String("username", user), zap.Error(err))
	}
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// MessageHandler serves a match's conversation.
type MessageHandler struct {
	messages *services.MessageService
	cfg      *config.Config
}

func NewMessageHandler(messages *services.MessageService, cfg *config.Config) *MessageHandler {
	return &MessageHandler{messages: messages, cfg: cfg}
}

// List returns a window of the conversation, newest window first,
// messages in ascending send order.
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid match id")
		return
	}

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			utils.BadRequest(c, "before must be an RFC 3339 timestamp")
			return
		}
		before = &parsed
	}

	take := queryInt(c, "take", 50)
	if take < 1 {
		take = 50
	}
	if take > h.cfg.MaxMessageTake {
		take = h.cfg.MaxMessageTake
	}

	messages, err := h.messages.GetMessages(matchID, userID, before, take)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Messages retrieved", gin.H{"messages": messages})
}

// SendMessageRequest represents one outgoing message. At least one of
// content and photoUrl must be present.
type SendMessageRequest struct {
	Content  string `json:"content" binding:"omitempty,max=1000"`
	PhotoURL string `json:"photoUrl" binding:"omitempty,url,max=500"`
}

// Send appends a message to the conversation.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid match id")
		return
	}

	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message, err := h.messages.SendMessage(userID, matchID, req.Content, req.PhotoURL)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, "Message sent", message)
}

// MarkReadRequest lists the messages the caller has read.
type MarkReadRequest struct {
	MessageIDs []uuid.UUID `json:"messageIds" binding:"required,min=1"`
}

// MarkRead flags the counterpart's messages as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid match id")
		return
	}

	var req MarkReadRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updated, err := h.messages.MarkRead(userID, matchID, req.MessageIDs)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Messages marked read", gin.H{"updated": updated})
}

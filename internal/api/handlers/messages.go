package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/contact"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

// MessageHandler handles contact message HTTP requests
type MessageHandler struct {
	manager  *contact.Manager
	hub      *websocket.Hub
	activity *activity.Logger
}

// NewMessageHandler creates a new contact message handler
func NewMessageHandler(manager *contact.Manager, hub *websocket.Hub, audit *activity.Logger) *MessageHandler {
	return &MessageHandler{manager: manager, hub: hub, activity: audit}
}

// ListMessages returns all contact messages, newest first
// GET /api/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateMessage stores a message from the public contact form
// POST /api/messages
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req contact.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.manager.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.EventMessageCreated, created)
	}

	c.JSON(http.StatusCreated, created)
}

// MarkMessageRead flags a message as read
// PATCH /api/messages
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.manager.MarkRead(req.ID)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMessage removes a contact message
// DELETE /api/messages?id=
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message id"})
		return
	}

	if err := h.manager.Delete(id); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	h.activity.Record("message.delete", id, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// ReplyMessage emails an admin reply to the message sender
// POST /api/messages/reply
func (h *MessageHandler) ReplyMessage(c *gin.Context) {
	var req struct {
		ID      string `json:"id" binding:"required"`
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.Reply(req.ID, req.Subject, req.Body); err != nil {
		switch {
		case errors.Is(err, contact.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case errors.Is(err, mailer.ErrDisabled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "SMTP is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		}
		return
	}

	h.activity.Record("message.reply", req.ID, req.Subject, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Reply sent"})
}

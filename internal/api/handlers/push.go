package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/models"
	"github.com/yourusername/lokanta-backend/internal/notify"
	"github.com/yourusername/lokanta-backend/internal/push"
)

// PushHandler handles push subscription CRUD and broadcast sends
type PushHandler struct {
	broadcaster *push.Broadcaster
	activity    *activity.Logger
}

// NewPushHandler creates a new push handler
func NewPushHandler(broadcaster *push.Broadcaster, audit *activity.Logger) *PushHandler {
	return &PushHandler{broadcaster: broadcaster, activity: audit}
}

// ListSubscriptions returns all stored push subscriptions
// GET /api/push/subscriptions
func (h *PushHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.broadcaster.Subscriptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// CreateSubscription stores a browser push subscription
// POST /api/push/subscriptions
func (h *PushHandler) CreateSubscription(c *gin.Context) {
	var sub models.PushSubscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if sub.Endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription endpoint is required"})
		return
	}

	created, err := h.broadcaster.Subscribe(sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteSubscription removes a push subscription
// DELETE /api/push/subscriptions?id=
func (h *PushHandler) DeleteSubscription(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription id"})
		return
	}

	if err := h.broadcaster.Unsubscribe(id); err != nil {
		if errors.Is(err, push.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted"})
}

// SendPush broadcasts a notification to every subscriber
// POST /api/push/send
func (h *PushHandler) SendPush(c *gin.Context) {
	var msg models.PushMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if msg.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification title is required"})
		return
	}

	summary, err := notify.Push(h.broadcaster, msg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	h.activity.Record("push.send", "", msg.Title, c.ClientIP())

	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/notify"
)

// NotifyHandler handles admin-triggered email broadcasts
type NotifyHandler struct {
	sender   mailer.Sender
	activity *activity.Logger
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(sender mailer.Sender, audit *activity.Logger) *NotifyHandler {
	return &NotifyHandler{sender: sender, activity: audit}
}

// SendEmail fans one message out to a list of recipients and reports
// the per-recipient outcome
// POST /api/notify/email
func (h *NotifyHandler) SendEmail(c *gin.Context) {
	var req struct {
		Recipients []string `json:"recipients" binding:"required"`
		Subject    string   `json:"subject" binding:"required"`
		Body       string   `json:"body"`
		HTML       bool     `json:"html"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipients and subject are required"})
		return
	}
	if len(req.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one recipient is required"})
		return
	}

	summary := notify.Email(h.sender, req.Recipients, req.Subject, req.Body, req.HTML)

	h.activity.Record("notify.email", "", fmt.Sprintf("%s (%d recipients)", req.Subject, len(req.Recipients)), c.ClientIP())

	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
	"github.com/yourusername/lokanta-backend/internal/settings"
)

// SettingsHandler handles the capacity, SEO and SMTP settings documents
type SettingsHandler struct {
	manager  *settings.Manager
	mailer   mailer.Sender
	activity *activity.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(manager *settings.Manager, sender mailer.Sender, audit *activity.Logger) *SettingsHandler {
	return &SettingsHandler{manager: manager, mailer: sender, activity: audit}
}

// GetCapacitySettings returns the capacity settings
// GET /api/settings/capacity
func (h *SettingsHandler) GetCapacitySettings(c *gin.Context) {
	capacity, err := h.manager.Capacity()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load capacity settings"})
		return
	}

	c.JSON(http.StatusOK, capacity)
}

// SaveCapacitySettings overwrites the capacity settings
// PUT /api/settings/capacity
func (h *SettingsHandler) SaveCapacitySettings(c *gin.Context) {
	var capacity models.CapacitySettings
	if err := c.ShouldBindJSON(&capacity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.SaveCapacity(capacity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record("settings.capacity.save", "", "", c.ClientIP())

	c.JSON(http.StatusOK, capacity)
}

// GetSEOSettings returns the SEO settings
// GET /api/settings/seo
func (h *SettingsHandler) GetSEOSettings(c *gin.Context) {
	seo, err := h.manager.SEO()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load SEO settings"})
		return
	}

	c.JSON(http.StatusOK, seo)
}

// SaveSEOSettings overwrites the SEO settings
// PUT /api/settings/seo
func (h *SettingsHandler) SaveSEOSettings(c *gin.Context) {
	var seo models.SEOSettings
	if err := c.ShouldBindJSON(&seo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.SaveSEO(seo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save SEO settings"})
		return
	}

	h.activity.Record("settings.seo.save", "", "", c.ClientIP())

	c.JSON(http.StatusOK, seo)
}

// GetSMTPSettings returns the SMTP settings
// GET /api/settings/smtp
func (h *SettingsHandler) GetSMTPSettings(c *gin.Context) {
	smtp, err := h.manager.SMTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load SMTP settings"})
		return
	}

	c.JSON(http.StatusOK, smtp)
}

// SaveSMTPSettings overwrites the SMTP settings
// PUT /api/settings/smtp
func (h *SettingsHandler) SaveSMTPSettings(c *gin.Context) {
	var smtp models.SMTPSettings
	if err := c.ShouldBindJSON(&smtp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.SaveSMTP(smtp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save SMTP settings"})
		return
	}

	h.activity.Record("settings.smtp.save", "", "", c.ClientIP())

	c.JSON(http.StatusOK, smtp)
}

// TestSMTP sends a test message through the configured SMTP server
// POST /api/settings/smtp/test
func (h *SettingsHandler) TestSMTP(c *gin.Context) {
	var req struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg := &mailer.Message{
		To:      []string{req.To},
		Subject: "SMTP Test",
		Body:    "SMTP ayarlarınız doğru şekilde yapılandırılmış.",
	}
	if err := h.mailer.Send(msg); err != nil {
		if errors.Is(err, mailer.ErrDisabled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "SMTP is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Test email failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test email sent"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/content"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ContentHandler handles the about page and policy texts
type ContentHandler struct {
	manager  *content.Manager
	activity *activity.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(manager *content.Manager, audit *activity.Logger) *ContentHandler {
	return &ContentHandler{manager: manager, activity: audit}
}

// GetAbout returns the about page content
// GET /api/content/about
func (h *ContentHandler) GetAbout(c *gin.Context) {
	about, err := h.manager.About()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load about page"})
		return
	}

	c.JSON(http.StatusOK, about)
}

// SaveAbout overwrites the about page content
// PUT /api/content/about
func (h *ContentHandler) SaveAbout(c *gin.Context) {
	var about models.AboutPage
	if err := c.ShouldBindJSON(&about); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.SaveAbout(about); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save about page"})
		return
	}

	h.activity.Record("content.about.save", "", "", c.ClientIP())

	c.JSON(http.StatusOK, about)
}

// GetPolicies returns the legal policy texts
// GET /api/policies
func (h *ContentHandler) GetPolicies(c *gin.Context) {
	policies, err := h.manager.Policies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load policies"})
		return
	}

	c.JSON(http.StatusOK, policies)
}

// SavePolicies overwrites the legal policy texts
// PUT /api/policies
func (h *ContentHandler) SavePolicies(c *gin.Context) {
	var policies models.Policies
	if err := c.ShouldBindJSON(&policies); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.manager.SavePolicies(policies); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save policies"})
		return
	}

	h.activity.Record("content.policies.save", "", "", c.ClientIP())

	c.JSON(http.StatusOK, policies)
}

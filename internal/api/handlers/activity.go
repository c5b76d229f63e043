package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
)

// ActivityHandler exposes the admin audit trail
type ActivityHandler struct {
	activity *activity.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(audit *activity.Logger) *ActivityHandler {
	return &ActivityHandler{activity: audit}
}

// ListActivity returns the newest audit entries
// GET /api/activity?limit=
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.activity.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity log"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

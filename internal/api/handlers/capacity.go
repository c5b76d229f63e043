package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/capacity"
)

// CapacityHandler handles availability checks from the public form
type CapacityHandler struct {
	evaluator *capacity.Evaluator
}

// NewCapacityHandler creates a new capacity handler
func NewCapacityHandler(evaluator *capacity.Evaluator) *CapacityHandler {
	return &CapacityHandler{evaluator: evaluator}
}

// CheckCapacity evaluates slot availability
// POST /api/capacity/check
func (h *CapacityHandler) CheckCapacity(c *gin.Context) {
	var req struct {
		Date   string `json:"date" binding:"required"`
		Time   string `json:"time" binding:"required"`
		Guests int    `json:"guests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.evaluator.Check(req.Date, req.Time, req.Guests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

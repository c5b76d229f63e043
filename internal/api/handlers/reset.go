package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/reset"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

// ResetHandler handles the two-step system reset flow
type ResetHandler struct {
	service  *reset.Service
	hub      *websocket.Hub
	activity *activity.Logger
}

// NewResetHandler creates a new reset handler
func NewResetHandler(service *reset.Service, hub *websocket.Hub, audit *activity.Logger) *ResetHandler {
	return &ResetHandler{service: service, hub: hub, activity: audit}
}

// GetChallenge issues a confirmation challenge
// GET /api/reset/challenge
func (h *ResetHandler) GetChallenge(c *gin.Context) {
	id, question := h.service.Challenge()
	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"question": question,
	})
}

// ConfirmReset verifies the challenge answer and resets the system
// POST /api/reset
func (h *ResetHandler) ConfirmReset(c *gin.Context) {
	var req struct {
		ChallengeID string `json:"challenge_id" binding:"required"`
		Answer      string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Confirm(req.ChallengeID, req.Answer); err != nil {
		switch {
		case errors.Is(err, reset.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found or expired"})
		case errors.Is(err, reset.ErrWrongAnswer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong answer"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
		}
		return
	}

	h.activity.Record("system.reset", "", "", c.ClientIP())
	if h.hub != nil {
		h.hub.Broadcast(websocket.EventSystemReset, nil)
	}

	c.JSON(http.StatusOK, gin.H{"message": "System reset complete"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/models"
	"github.com/yourusername/lokanta-backend/internal/reservation"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	manager  *reservation.Manager
	hub      *websocket.Hub
	activity *activity.Logger
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(manager *reservation.Manager, hub *websocket.Hub, audit *activity.Logger) *ReservationHandler {
	return &ReservationHandler{manager: manager, hub: hub, activity: audit}
}

// ListReservations returns all reservations, newest first
// GET /api/reservations
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	reservations, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// CreateReservation creates a reservation from the public form
// POST /api/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reservation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.manager.Create(req)
	if err != nil {
		var vErr *reservation.ValidationError
		var cErr *reservation.CapacityError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.As(err, &cErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": cErr.Result.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.EventReservationCreated, created)
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateReservationStatus overwrites a reservation's status
// PATCH /api/reservations
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	var req struct {
		ID     string `json:"id" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !models.ValidReservationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown reservation status"})
		return
	}

	updated, err := h.manager.UpdateStatus(req.ID, req.Status)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	h.activity.Record("reservation.status", updated.ID, req.Status, c.ClientIP())
	if h.hub != nil {
		h.hub.Broadcast(websocket.EventReservationUpdated, updated)
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteReservation removes a reservation
// DELETE /api/reservations?id=
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reservation id"})
		return
	}

	if err := h.manager.Delete(id); err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
		return
	}

	h.activity.Record("reservation.delete", id, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

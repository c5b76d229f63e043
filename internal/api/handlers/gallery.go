package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/content"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// GalleryHandler handles gallery image metadata HTTP requests
type GalleryHandler struct {
	manager  *content.Manager
	activity *activity.Logger
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(manager *content.Manager, audit *activity.Logger) *GalleryHandler {
	return &GalleryHandler{manager: manager, activity: audit}
}

// ListImages returns all gallery images
// GET /api/gallery
func (h *GalleryHandler) ListImages(c *gin.Context) {
	images, err := h.manager.Gallery()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gallery"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// CreateImage adds a gallery image entry
// POST /api/gallery
func (h *GalleryHandler) CreateImage(c *gin.Context) {
	var image models.GalleryImage
	if err := c.ShouldBindJSON(&image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if image.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image url is required"})
		return
	}

	created, err := h.manager.AddImage(image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	h.activity.Record("gallery.create", created.ID, created.Title, c.ClientIP())

	c.JSON(http.StatusCreated, created)
}

// UpdateImage overwrites a gallery image entry
// PUT /api/gallery/:id
func (h *GalleryHandler) UpdateImage(c *gin.Context) {
	var image models.GalleryImage
	if err := c.ShouldBindJSON(&image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.manager.UpdateImage(c.Param("id"), image)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteImage removes a gallery image entry
// DELETE /api/gallery/:id
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")
	if err := h.manager.DeleteImage(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	h.activity.Record("gallery.delete", id, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

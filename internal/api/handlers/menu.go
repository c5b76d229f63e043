package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/content"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// MenuHandler handles menu category and item HTTP requests
type MenuHandler struct {
	manager  *content.Manager
	activity *activity.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(manager *content.Manager, audit *activity.Logger) *MenuHandler {
	return &MenuHandler{manager: manager, activity: audit}
}

// GetMenu returns the full menu with categories and items
// GET /api/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.manager.Menu()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// CreateCategory adds a menu category
// POST /api/menu/categories
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Order int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.manager.AddCategory(req.Name, req.Order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.activity.Record("menu.category.create", created.ID, created.Name, c.ClientIP())

	c.JSON(http.StatusCreated, created)
}

// UpdateCategory renames or reorders a category
// PUT /api/menu/categories/:id
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Order int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.manager.UpdateCategory(c.Param("id"), req.Name, req.Order)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCategory removes a category and its items
// DELETE /api/menu/categories/:id
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.manager.DeleteCategory(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	h.activity.Record("menu.category.delete", id, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// CreateItem adds an item to a category
// POST /api/menu/categories/:id/items
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	created, err := h.manager.AddItem(c.Param("id"), item)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateItem overwrites a menu item
// PUT /api/menu/items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.manager.UpdateItem(c.Param("id"), item)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteItem removes a menu item
// DELETE /api/menu/items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	if err := h.manager.DeleteItem(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	h.activity.Record("menu.item.delete", id, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

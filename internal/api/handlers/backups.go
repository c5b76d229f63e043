package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/backup"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

// maxSnapshotSize bounds uploaded restore payloads
const maxSnapshotSize = 32 << 20

// BackupHandler handles snapshot export, restore and auto-backup requests
type BackupHandler struct {
	engine    *backup.Engine
	scheduler *backup.Scheduler
	hub       *websocket.Hub
	activity  *activity.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(engine *backup.Engine, scheduler *backup.Scheduler, hub *websocket.Hub, audit *activity.Logger) *BackupHandler {
	return &BackupHandler{engine: engine, scheduler: scheduler, hub: hub, activity: audit}
}

// ExportBackup returns a full snapshot as a downloadable file
// GET /api/backup
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	data, entry, err := h.engine.Manual()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create backup"})
		return
	}

	h.activity.Record("backup.export", entry.ID, "", c.ClientIP())
	if h.hub != nil {
		h.hub.Broadcast(websocket.EventBackupCompleted, entry)
	}

	filename := fmt.Sprintf("yedek-%s.json", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// RestoreBackup overwrites documents from an uploaded snapshot
// POST /api/backup
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read snapshot"})
		return
	}

	if err := h.engine.Restore(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record("backup.restore", "", "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored"})
}

// AutoBackup runs an export-and-email cycle and registers the schedule
// POST /api/backup/auto
func (h *BackupHandler) AutoBackup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Interval int    `json:"interval"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Interval < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Interval cannot be negative"})
		return
	}

	entry, err := h.engine.Auto(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Auto backup failed"})
		return
	}

	if err := h.scheduler.Configure(req.Email, req.Interval); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register backup schedule"})
		return
	}

	h.activity.Record("backup.auto", entry.ID, fmt.Sprintf("interval=%dh", req.Interval), c.ClientIP())
	if h.hub != nil {
		h.hub.Broadcast(websocket.EventBackupCompleted, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"fileSize":  entry.FileSize,
		"emailSent": entry.EmailSent,
	})
}

// ListBackupLogs returns the most recent backup log entries
// GET /api/backup/logs
func (h *BackupHandler) ListBackupLogs(c *gin.Context) {
	logs, err := h.engine.Logs().Recent()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load backup logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	ws "github.com/yourusername/lokanta-backend/internal/websocket"
)

// WebSocketHandler upgrades admin panel connections to the event hub
type WebSocketHandler struct {
	hub            *ws.Hub
	allowedOrigins []string
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, allowedOrigins: allowedOrigins}
}

// Connect upgrades the request and attaches the client to the hub
// GET /api/ws/admin
func (h *WebSocketHandler) Connect(c *gin.Context) {
	upgrader := buildUpgrader(h.allowedOrigins)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] Failed to upgrade: %v (origin=%s)", err, c.Request.Header.Get("Origin"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "WebSocket upgrade failed"})
		return
	}

	client := &ws.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan *ws.Event, 256),
		Hub:  h.hub,
	}

	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func buildUpgrader(allowedOrigins []string) gorilla.Upgrader {
	return gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return isOriginAllowed(r.Header.Get("Origin"), allowedOrigins)
		},
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		normalized := strings.TrimSpace(allowedOrigin)
		if normalized == "" {
			continue
		}
		if normalized == "*" || normalized == origin {
			return true
		}
	}

	return false
}

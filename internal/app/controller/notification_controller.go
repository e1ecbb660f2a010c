package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/interno-studio/interno-backend/internal/app/service"
	"github.com/interno-studio/interno-backend/internal/middleware"
	ws "github.com/interno-studio/interno-backend/internal/websocket"
)

type NotificationController struct {
	notificationService service.NotificationService
	hub                 *ws.Hub
	upgrader            gorillaws.Upgrader
}

func NewNotificationController(notificationService service.NotificationService, hub *ws.Hub, allowedOrigins []string) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// List returns the session's active notifications
// GET /api/v1/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"notifications": ctrl.notificationService.Active(sessionID),
	})
}

// Dismiss removes a notification before it expires
// DELETE /api/v1/notifications/:id
func (ctrl *NotificationController) Dismiss(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	id := c.Param("id")

	ctrl.notificationService.Dismiss(sessionID, id)
	c.JSON(http.StatusOK, gin.H{"message": "Notification dismissed"})
}

// Stream upgrades to a WebSocket feed of notification and checkout events
// GET /api/v1/notifications/stream
func (ctrl *NotificationController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	client := &ws.Client{
		Hub:       ctrl.hub,
		Conn:      &ws.Conn{Conn: conn},
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

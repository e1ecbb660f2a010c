package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the browsing-session identifier. The frontend
	// stores it alongside its other persisted state and sends it on every
	// request.
	SessionHeader = "X-Session-ID"

	SessionIDKey = "session_id"
)

// SessionMiddleware resolves the browsing session for the request. A
// request without a session header gets a fresh ID, echoed back so the
// client can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(SessionIDKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

package middleware

import (
	"net/http"
	"strings"

	"starfolk-client/internal/auth"
	"starfolk-client/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by SessionAuthMiddleware.
const (
	SessionIDKey = "session_id"
	SessionKey   = "session"
)

// SessionAuthMiddleware validates the session token in the Authorization header
// and loads the session it names.
func SessionAuthMiddleware(signer *auth.Signer, registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		// Fallback for WebSocket/browser where custom headers cannot be set: allow token in query param
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := signer.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		s, ok := registry.Get(claims.SessionID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Session not found",
			})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, s.ID)
		c.Set(SessionKey, s)

		c.Next()
	}
}

// CurrentSession returns the session loaded by SessionAuthMiddleware.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

package routes

import (
	"net/http"
	"time"

	"starfolk-client/internal/auth"
	"starfolk-client/internal/handlers"
	"starfolk-client/internal/middleware"
	"starfolk-client/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newEngine() *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
	return ginRouter
}

// SetupGatewayRoutes serves the application core of each session to remote clients.
func SetupGatewayRoutes(gateway *handlers.Gateway, signer *auth.Signer, registry *session.Registry) *gin.Engine {
	ginRouter := newEngine()

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": registry.Len(),
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/sessions", gateway.CreateSession)
	}

	// Session routes (token required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.SessionAuthMiddleware(signer, registry))
	{
		protectedRoutes.GET("/session", gateway.GetSession)
		protectedRoutes.POST("/session/intents", gateway.PostIntent)
		protectedRoutes.POST("/session/token", gateway.RefreshToken)
		protectedRoutes.DELETE("/session", gateway.DeleteSession)
		protectedRoutes.GET("/ws", gateway.WebSocket)
	}

	return ginRouter
}

// SetupStubRoutes serves the development catalog from db. A positive latency
// delays every catalog response.
func SetupStubRoutes(db *gorm.DB, latency time.Duration) *gin.Engine {
	ginRouter := newEngine()

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	characters := &handlers.Characters{DB: db}
	catalog := ginRouter.Group("/characters")
	if latency > 0 {
		catalog.Use(delay(latency))
	}
	{
		catalog.GET("", characters.ListCharacters)
		catalog.GET("/:id", characters.GetCharacter)
	}

	return ginRouter
}

func delay(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

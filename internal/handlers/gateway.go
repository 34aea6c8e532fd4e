package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"starfolk-client/internal/app"
	"starfolk-client/internal/auth"
	"starfolk-client/internal/middleware"
	"starfolk-client/internal/realtime"
	"starfolk-client/internal/session"

	"github.com/gin-gonic/gin"
	"go.trai.ch/zerr"
)

// Message types pushed to websocket clients besides app.EventType values.
const (
	MessageSnapshot = "snapshot"
	MessageError    = "error"
)

// pushMessage is the frame written to websocket clients.
type pushMessage struct {
	Type  string    `json:"type"`
	View  *app.View `json:"view,omitempty"`
	Error string    `json:"error,omitempty"`
}

// Gateway exposes the application core of each session over HTTP and websockets.
type Gateway struct {
	registry *session.Registry
	signer   *auth.Signer
	hub      *realtime.Hub
	logger   *slog.Logger
}

// NewGateway wires the gateway handlers. Push connections of a session are
// closed when the session goes away.
func NewGateway(registry *session.Registry, signer *auth.Signer, hub *realtime.Hub, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{registry: registry, signer: signer, hub: hub, logger: logger}
	registry.OnRemove(func(s *session.Session) {
		hub.CloseSession(s.ID)
	})
	return g
}

// push broadcasts one view event to the session's sockets. It runs inside the
// app's publish and must not call back into the app.
func (g *Gateway) push(sessionID string, ev app.Event) {
	view := ev.View
	msg, err := json.Marshal(pushMessage{Type: string(ev.Type), View: &view})
	if err != nil {
		g.logger.Error("encoding view event", "session_id", sessionID, "error", err)
		return
	}
	g.hub.Broadcast(sessionID, msg)
}

// CreateSession starts a session and returns its token.
func (g *Gateway) CreateSession(c *gin.Context) {
	s := g.registry.Create()
	id := s.ID
	s.App.Subscribe(func(ev app.Event) { g.push(id, ev) })

	token, err := g.signer.GenerateToken(id)
	if err != nil {
		g.registry.Remove(id)
		zerr.Log(c.Request.Context(), g.logger, zerr.With(err, "session_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"token":      token,
	})
}

// GetSession returns the current view of the caller's session.
func (g *Gateway) GetSession(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": s.ID,
		"view":       s.App.View(),
	})
}

// PostIntent applies one intent to the caller's session.
func (g *Gateway) PostIntent(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var in Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if err := ApplyIntent(s.App, in); err != nil {
		if errors.Is(err, ErrUnknownIntent) || errors.Is(err, ErrInvalidIntent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zerr.Log(c.Request.Context(), g.logger, zerr.With(err, "session_id", s.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": s.App.View()})
}

// RefreshToken issues a new token for the caller's session, so a client in
// active use outlives the lifetime of its first token.
func (g *Gateway) RefreshToken(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	token, err := g.signer.GenerateToken(s.ID)
	if err != nil {
		zerr.Log(c.Request.Context(), g.logger, zerr.With(err, "session_id", s.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": s.ID,
		"token":      token,
	})
}

// DeleteSession stops the caller's session.
func (g *Gateway) DeleteSession(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	g.registry.Remove(s.ID)
	c.Status(http.StatusNoContent)
}

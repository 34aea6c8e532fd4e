package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"starfolk-client/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1024
	sendQueueSize  = 32
)

// wsClient implements realtime.Client. The writer goroutine owns every write to conn.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

// Send queues message. A client whose queue is full is closed.
func (c *wsClient) Send(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		c.Close()
		return false
	}
}

func (c *wsClient) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *wsClient) writeLoop() {
	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-pingTicker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// WebSocket upgrades the connection and registers it with the session's push
// clients. The current view is sent first; text frames carrying intents are applied.
func (g *Gateway) WebSocket(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", "session_id", s.ID, "error", err)
		return
	}

	client := newWSClient(conn)
	go client.writeLoop()
	g.hub.Register(s.ID, client)
	defer func() {
		g.hub.Unregister(s.ID, client)
		client.Close()
	}()

	view := s.App.View()
	g.sendFrame(client, pushMessage{Type: MessageSnapshot, View: &view})

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		g.registry.Touch(s.ID)
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Normal close or error; exit loop
			return
		}
		g.registry.Touch(s.ID)

		var in Intent
		if err := json.Unmarshal(data, &in); err != nil {
			g.sendFrame(client, pushMessage{Type: MessageError, Error: "invalid intent frame"})
			continue
		}
		if err := ApplyIntent(s.App, in); err != nil {
			g.sendFrame(client, pushMessage{Type: MessageError, Error: err.Error()})
		}
	}
}

func (g *Gateway) sendFrame(client *wsClient, msg pushMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		g.logger.Error("encoding push frame", "type", msg.Type, "error", err)
		return
	}
	client.Send(data)
}

package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/procurement-registry/backend/internal/auth"
	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/events"
	"github.com/procurement-registry/backend/internal/models"
	"go.uber.org/zap"
)

// FeedHub pushes recorded audit events to connected admin sessions so
// operators can watch the trail live.
type FeedHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn // keyed by session id
}

func NewFeedHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *FeedHub {
	return &FeedHub{
		cfg:         cfg,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *FeedHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.StreamAudit, func(event events.Event) {
		h.broadcast(event)
	})
}

func (h *FeedHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.connections {
		for _, conn := range conns {
			_ = conn.WriteMessage(websocket.TextMessage, data)
		}
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *FeedHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}
	if claims.Role != models.RoleAdmin {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"admin access required"}`))
		conn.Close()
		return
	}

	sessionID := claims.SessionID

	// Register
	h.mu.Lock()
	h.connections[sessionID] = append(h.connections[sessionID], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.connections[sessionID]
		for i, c := range conns {
			if c == conn {
				h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[sessionID]) == 0 {
			delete(h.connections, sessionID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

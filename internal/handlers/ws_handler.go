package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth happens before the upgrade; origins are handled by CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler upgrades the connection and registers it with the hub so the
// client receives pair-scoped change events.
type StreamHandler struct {
	Hub *services.StreamHub
}

func NewStreamHandler(hub *services.StreamHub) *StreamHandler {
	return &StreamHandler{Hub: hub}
}

// ServeStreamHandler handles GET /ws.
func (h *StreamHandler) ServeStreamHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.Hub.Register(claims.UserID, conn)

	// Reads only keep the connection alive and detect the close; clients
	// never send application data over the stream.
	go func(userID string, conn *websocket.Conn) {
		defer h.Hub.Unregister(userID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}(claims.UserID, conn)
}

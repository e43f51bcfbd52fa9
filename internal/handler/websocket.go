package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"real_estate/internal/middleware"
	"real_estate/internal/relay"
	"real_estate/pkg/logger"
)

type WebSocketHandler struct {
	hub      *relay.Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewWebSocketHandler accepts handshakes from the configured origins only.
// Requests without an Origin header (non-browser clients) are allowed.
func NewWebSocketHandler(hub *relay.Hub, allowedOrigins []string, log logger.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		log: log,
	}
}

func (h *WebSocketHandler) Serve(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Failed to upgrade connection", "error", err)
		return
	}

	h.hub.Serve(c.Request.Context(), conn, user.ID)
}

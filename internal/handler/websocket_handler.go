package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/middleware"
	ws "github.com/msoliva/atalaya/atalaya-backend/internal/websocket"
)

// WebSocketHandler handles WebSocket connections for live dashboard updates
type WebSocketHandler struct {
	hub      *ws.Hub
	auth     *middleware.AuthMiddleware
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. allowedOrigins is the
// set of origins accepted during the upgrade handshake; an empty list
// accepts any origin (development only).
func NewWebSocketHandler(hub *ws.Hub, auth *middleware.AuthMiddleware, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
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

// Handle handles GET /ws. Browsers cannot set an Authorization header on a
// WebSocket handshake, so the token arrives as a query parameter.
func (h *WebSocketHandler) Handle(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return NewUnauthorizedError(c, "Missing token")
	}

	role, err := h.auth.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket token validation failed")
		return NewUnauthorizedError(c, "Invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return nil
	}

	client := ws.NewClient(conn, role, h.hub)
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Str("role", role).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}

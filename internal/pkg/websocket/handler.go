package websocket

import (
	"github.com/campulist/campulist/internal/app/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades chat requests to websocket subscriptions
type Handler struct {
	hub     *Hub
	inbound *MessageHandler
	logger  zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, sender MessageSender, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		inbound: NewMessageHandler(sender, logger),
		logger:  logger,
	}
}

// Serve upgrades the connection and subscribes it to threadID. The caller
// must already have checked that session can see the thread.
func (h *Handler) Serve(c *gin.Context, session models.Session, threadID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("thread_id", threadID).
			Str("user_id", session.UserID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, session, threadID, h.inbound, h.logger)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("thread_id", threadID).
		Str("user_id", session.UserID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

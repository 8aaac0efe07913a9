package controllers

import (
	"net/http"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/middleware"
	"github.com/campulist/campulist/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChatController handles chat threads and their realtime channel
type ChatController struct {
	api       *services.API
	wsHandler *websocket.Handler
	logger    zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(api *services.API, wsHandler *websocket.Handler, logger zerolog.Logger) *ChatController {
	return &ChatController{
		api:       api,
		wsHandler: wsHandler,
		logger:    logger,
	}
}

// ListMyChats returns the session's threads, most recent activity first
// @Router /chats [get]
func (c *ChatController) ListMyChats(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.api.ListMyChats(ctx.Request.Context()))
}

// StartChat opens a thread with the author of a post, reusing an existing one
// @Router /chats/start [post]
func (c *ChatController) StartChat(ctx *gin.Context) {
	var input dto.StartChatInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, c.api.StartChat(ctx.Request.Context(), input))
}

// ListMessages returns a thread's messages oldest first
// @Router /chats/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.ListMessages(ctx.Request.Context(), id))
}

// SendMessage posts a message to a thread
// @Router /chats/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var input dto.SendMessageInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, c.api.SendMessage(ctx.Request.Context(), id, input))
}

// HandleWebSocket subscribes the caller to new messages of a thread they
// take part in
// @Router /chats/{id}/ws [get]
func (c *ChatController) HandleWebSocket(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reqCtx := ctx.Request.Context()
	thread := c.api.GetChatThread(reqCtx, id)
	if !thread.OK {
		respond(ctx, http.StatusOK, thread)
		return
	}
	session := c.api.GetSession(reqCtx)
	if !session.OK {
		respond(ctx, http.StatusOK, session)
		return
	}

	c.logger.Debug().Str("thread_id", id).Str("user_id", session.Data.UserID).Msg("WebSocket upgrade requested")
	c.wsHandler.Serve(ctx, session.Data, id)
}

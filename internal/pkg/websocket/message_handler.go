package websocket

import (
	"context"
	"encoding/json"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MessageSender stores a chat message on behalf of the session in ctx.
// *services.API satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, threadID string, input dto.SendMessageInput) dto.Result[*models.ChatMessage]
}

type inboundFrame struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

// MessageHandler turns frames typed by a socket client into stored messages.
// Successful sends reach every subscriber through the hub; failures are
// reported to the sending client only.
type MessageHandler struct {
	sender MessageSender
	logger zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(sender MessageSender, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		sender: sender,
		logger: logger,
	}
}

// Handle processes one inbound frame from c
func (h *MessageHandler) Handle(c *Client, frame []byte) {
	var in inboundFrame
	if err := json.Unmarshal(frame, &in); err != nil || in.Type != EventMessage {
		h.reply(c, &dto.ErrorPayload{Code: apperrors.KindBadRequest, Message: "Malformed chat frame."})
		return
	}

	ctx := auth.ContextWithSession(context.Background(), c.session)
	res := h.sender.SendMessage(ctx, c.threadID, dto.SendMessageInput{Body: in.Body})
	if !res.OK {
		h.reply(c, res.Error)
	}
}

func (h *MessageHandler) reply(c *Client, payload *dto.ErrorPayload) {
	data, err := json.Marshal(&Event{Type: EventError, ThreadID: c.threadID, Error: payload})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal error frame")
		return
	}
	if !c.trySend(data) {
		h.logger.Debug().Str("thread_id", c.threadID).Msg("Dropped error frame for slow client")
	}
}

package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ayurov/pulsebot/internal/market"
)

// NewPricesHandler returns a handler for the /prices command. It fetches a
// live snapshot of every watched symbol and replies with the formatted list.
func NewPricesHandler(deps HandlerDeps) bot.HandlerFunc {
	return pricesHandler{deps}.Handle
}

type pricesHandler struct {
	deps HandlerDeps
}

func (h pricesHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "prices")

	if update.Message == nil {
		log.WarnContext(ctx, "Prices handler received update with nil message", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /prices command", "chat_id", update.Message.Chat.ID)

	quotes := h.deps.Market.FetchAll(ctx)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   market.BuildSnapshot(quotes, time.Now()),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send prices snapshot", "error", err, "chat_id", update.Message.Chat.ID)
	}
}

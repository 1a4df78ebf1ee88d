package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ayurov/pulsebot/internal/market"
)

// NewStatusHandler returns a handler for the /status command. It replies
// with the portfolio idea and the near-term risk list.
func NewStatusHandler(deps HandlerDeps) bot.HandlerFunc {
	return statusHandler{deps}.Handle
}

type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "status")

	if update.Message == nil {
		log.WarnContext(ctx, "Status handler received update with nil message", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /status command", "chat_id", update.Message.Chat.ID)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   BuildStatusText(time.Now()),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send status message", "error", err, "chat_id", update.Message.Chat.ID)
	}
}

// BuildStatusText renders the /status reply for the given moment.
func BuildStatusText(now time.Time) string {
	portfolio := []string{
		"📦 Идея портфеля:",
		"• S&P 500 (через SPY) — рост",
		"• VWCE (весь мир) — диверсификация",
		"• Gold — защита",
		"",
		"Логика: акции = рост, золото = защита. Балансируешь, а не гадаешь.",
	}
	risks := []string{
		"Риски ближайшего плана:",
		"• ФРС/ставка, CPI США",
		"• Риторика США–Китай",
		"• Отчёты мейджоров США",
	}

	return "⏰ " + market.FormatUTC(now) + "\n" +
		strings.Join(portfolio, "\n") + "\n\n" +
		strings.Join(risks, "\n")
}

// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// OwnerOnly creates a middleware that restricts a handler to the configured
// owner chat. Unauthorized updates are logged and dropped without a reply.
func OwnerOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if chatID != deps.Config.Telegram.OwnerChatID {
				deps.Logger.WarnContext(ctx, "Unauthorized access attempt",
					"middleware", "OwnerOnly", "chat_id", chatID)
				return
			}

			next(ctx, b, update)
		}
	}
}

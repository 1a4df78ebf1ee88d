package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewChatIDHandler returns the default handler: it echoes the numeric chat
// identifier back for any plain-text message. Commands and non-text updates
// are ignored so command handlers stay the only reaction to them.
func NewChatIDHandler(deps HandlerDeps) bot.HandlerFunc {
	return chatIDHandler{deps}.Handle
}

type chatIDHandler struct {
	deps HandlerDeps
}

func (h chatIDHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "chat_id")

	if !IsPlainText(update) {
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Echoing chat id", "chat_id", chatID)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   BuildChatIDReply(h.deps.Config.Messages.ChatID, chatID),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send chat id reply", "error", err, "chat_id", chatID)
	}
}

// IsPlainText reports whether the update is a non-command text message.
// The handler never looks at the text beyond this classification.
func IsPlainText(update *models.Update) bool {
	if update == nil || update.Message == nil {
		return false
	}
	text := update.Message.Text
	if text == "" {
		return false
	}
	return !strings.HasPrefix(text, "/")
}

// BuildChatIDReply renders the chat-id echo reply from the configured
// template. Chat ids can be negative (groups and supergroups) or zero.
func BuildChatIDReply(template string, chatID int64) string {
	return fmt.Sprintf(template, chatID)
}

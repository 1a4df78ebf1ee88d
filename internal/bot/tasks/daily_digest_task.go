package tasks

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/ayurov/pulsebot/internal/market"
)

// newDailyDigestTask creates the scheduled task that sends the daily price
// snapshot to the owner chat.
func newDailyDigestTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_digest")

	return func(ctx context.Context) error {
		quotes := deps.Market.FetchAll(ctx)
		text := deps.Config.Messages.DailyDigestHeader + "\n" + market.BuildSnapshot(quotes, time.Now())

		if _, err := deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: deps.Config.Telegram.OwnerChatID,
			Text:   text,
		}); err != nil {
			return fmt.Errorf("failed to send daily digest: %w", err)
		}

		log.InfoContext(ctx, "Daily digest sent", "quotes", len(quotes))
		return nil
	}
}

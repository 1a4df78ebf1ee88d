package tasks

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
)

// newWeeklyCalendarTask creates the scheduled task that sends the weekly
// risk calendar sketch to the owner chat.
func newWeeklyCalendarTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "weekly_calendar")

	return func(ctx context.Context) error {
		if _, err := deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: deps.Config.Telegram.OwnerChatID,
			Text:   BuildWeeklyCalendarText(),
		}); err != nil {
			return fmt.Errorf("failed to send weekly calendar: %w", err)
		}

		log.InfoContext(ctx, "Weekly calendar sent")
		return nil
	}
}

// BuildWeeklyCalendarText renders the static weekly risk calendar.
func BuildWeeklyCalendarText() string {
	items := []string{
		"📅 ФРС/ставка США — тон влияет на акции США и VWCE",
		"📅 CPI/инфляция США — высокая инфляция → давление на акции, поддержка золоту",
		"📅 Отчёты крупных компаний США — волатильность индекса",
		"🌏 США—Китай — риторика/встречи → техи/полупроводники",
		"💬 Спичи центробанков (Пауэлл/Лагард) — чувствительно для риска",
	}

	out := []string{"🗓 Календарь риска на неделю (набросок):"}
	for _, item := range items {
		out = append(out, "• "+item)
	}
	out = append(out, "\nP.S. Могу расширить с реальными датами по запросу.")

	return strings.Join(out, "\n")
}

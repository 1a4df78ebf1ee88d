// Package tasks implements the scheduled jobs of the bot: the price watch,
// the daily digest, the weekly risk calendar, and database maintenance.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/ayurov/pulsebot/internal/config"
	"github.com/ayurov/pulsebot/internal/database"
	"github.com/ayurov/pulsebot/internal/market"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Market market.Client
	TG     *tgbot.Bot
}

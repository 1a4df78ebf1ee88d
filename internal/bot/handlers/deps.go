package handlers

import (
	"log/slog"

	"github.com/ayurov/pulsebot/internal/config"
	"github.com/ayurov/pulsebot/internal/database"
	"github.com/ayurov/pulsebot/internal/market"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Market market.Client
}

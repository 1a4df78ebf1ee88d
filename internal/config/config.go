// Package config manages application configuration from config.yaml,
// BOT_* environment variables, and default values.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the full application configuration. Values can be set via
// config.yaml or environment variables prefixed with BOT_
// (e.g. BOT_TELEGRAM_TOKEN).
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Market    MarketConfig    `mapstructure:"market"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the owner chat that receives
// portfolio replies and alerts.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	OwnerChatID int64  `mapstructure:"owner_chat_id" validate:"required"`

	// BotInfo is populated at startup from GetMe and is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// CryptoAsset maps a display symbol to its CoinGecko id.
type CryptoAsset struct {
	Symbol string `mapstructure:"symbol" validate:"required"`
	ID     string `mapstructure:"id"     validate:"required"`
}

// FundAsset is a fund or commodity quoted via Stooq. Tickers are tried in
// order until one returns a usable close price.
type FundAsset struct {
	Name     string   `mapstructure:"name"     validate:"required"`
	Tickers  []string `mapstructure:"tickers"  validate:"required,min=1"`
	Currency string   `mapstructure:"currency" validate:"required,oneof=USD EUR"`
}

// MarketConfig configures the market data client and alert thresholds.
type MarketConfig struct {
	CoinGeckoURL string        `mapstructure:"coingecko_url" validate:"required,url"`
	StooqURL     string        `mapstructure:"stooq_url"     validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout"       validate:"min=1s,max=1m"`
	MaxRetries   int           `mapstructure:"max_retries"   validate:"min=0,max=5"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"   validate:"min=0,max=30s"`

	CryptoAlertMove float64 `mapstructure:"crypto_alert_move" validate:"gt=0,lt=1"`
	AssetAlertMove  float64 `mapstructure:"asset_alert_move"  validate:"gt=0,lt=1"`

	Crypto []CryptoAsset `mapstructure:"crypto" validate:"required,min=1,dive"`
	Assets []FundAsset   `mapstructure:"assets" validate:"required,min=1,dive"`
}

// TaskConfig enables a scheduled task and sets its cron schedule.
// Schedules use the gocron cron format with an optional seconds field and
// support a CRON_TZ= prefix.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules. Task names must match
// the keys registered in the tasks package.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds user-visible reply templates.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"             validate:"required"`
	ChatID            string `mapstructure:"chat_id"             validate:"required"`
	DailyDigestHeader string `mapstructure:"daily_digest_header" validate:"required"`
}

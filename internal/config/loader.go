package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultDBPath = "pulsebot.db"

	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	DefaultStooqURL     = "https://stooq.com"
	DefaultTimeout      = 8 * time.Second
	DefaultMaxRetries   = 2
	DefaultRetryDelay   = 2 * time.Second

	// Alert thresholds relative to the last persisted baseline.
	DefaultCryptoAlertMove = 0.04
	DefaultAssetAlertMove  = 0.01
)

// DefaultCrypto is the watched crypto set, symbol to CoinGecko id.
var DefaultCrypto = []CryptoAsset{
	{Symbol: "BTC", ID: "bitcoin"},
	{Symbol: "ETH", ID: "ethereum"},
	{Symbol: "SOL", ID: "solana"},
	{Symbol: "AVAX", ID: "avalanche-2"},
	{Symbol: "DOGE", ID: "dogecoin"},
	{Symbol: "LINK", ID: "chainlink"},
}

// DefaultAssets is the watched fund/commodity set with Stooq fallback tickers.
var DefaultAssets = []FundAsset{
	{Name: "S&P 500 (SPY)", Tickers: []string{"spy.us", "^spx.us"}, Currency: "USD"},
	{Name: "VWCE", Tickers: []string{"vwce.de", "vwrl.us"}, Currency: "EUR"},
	{Name: "GOLD (XAU/USD)", Tickers: []string{"xauusd.us", "xauusd", "gold.us"}, Currency: "USD"},
}

// DefaultTasks enables all scheduled jobs. Schedules use the seconds-first
// cron format; the digest and calendar run on Riga local time.
var DefaultTasks = map[string]TaskConfig{
	"price_watch":     {Enabled: true, Schedule: "0 */10 * * * *"},
	"daily_digest":    {Enabled: true, Schedule: "CRON_TZ=Europe/Riga 0 0 11 * * *"},
	"weekly_calendar": {Enabled: true, Schedule: "CRON_TZ=Europe/Riga 0 0 19 * * 0"},
	"sql_maintenance": {Enabled: true, Schedule: "0 0 4 * * 1"},
}

// Default user-visible messages.
const (
	DefaultMsgWelcome           = "✅ Бот запущен! Напиши мне что-нибудь — я покажу твой chat_id."
	DefaultMsgChatID            = "Твой chat_id: %d"
	DefaultMsgDailyDigestHeader = "📬 Ежедневный дайджест"
)

// LoadConfig loads and validates configuration from:
//  1. Default values
//  2. The YAML file at path (missing file is allowed)
//  3. BOT_* environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	cfg := defaultConfig()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults plus env cover everything.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// defaultConfig builds a Config carrying every default, including the slice
// and map values viper defaults handle poorly.
func defaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level: DefaultLogLevel,
			JSON:  DefaultLogJSON,
		},
		Database: DatabaseConfig{
			Path: DefaultDBPath,
		},
		Market: MarketConfig{
			CoinGeckoURL:    DefaultCoinGeckoURL,
			StooqURL:        DefaultStooqURL,
			Timeout:         DefaultTimeout,
			MaxRetries:      DefaultMaxRetries,
			RetryDelay:      DefaultRetryDelay,
			CryptoAlertMove: DefaultCryptoAlertMove,
			AssetAlertMove:  DefaultAssetAlertMove,
			Crypto:          DefaultCrypto,
			Assets:          DefaultAssets,
		},
		Scheduler: SchedulerConfig{
			Tasks: DefaultTasks,
		},
		Messages: MessagesConfig{
			Welcome:           DefaultMsgWelcome,
			ChatID:            DefaultMsgChatID,
			DailyDigestHeader: DefaultMsgDailyDigestHeader,
		},
	}
}

// setDefaults registers scalar defaults so environment overrides resolve even
// without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.owner_chat_id", 0)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("market.coingecko_url", DefaultCoinGeckoURL)
	v.SetDefault("market.stooq_url", DefaultStooqURL)
	v.SetDefault("market.timeout", DefaultTimeout)
	v.SetDefault("market.max_retries", DefaultMaxRetries)
	v.SetDefault("market.retry_delay", DefaultRetryDelay)
	v.SetDefault("market.crypto_alert_move", DefaultCryptoAlertMove)
	v.SetDefault("market.asset_alert_move", DefaultAssetAlertMove)

	v.SetDefault("messages.welcome", DefaultMsgWelcome)
	v.SetDefault("messages.chat_id", DefaultMsgChatID)
	v.SetDefault("messages.daily_digest_header", DefaultMsgDailyDigestHeader)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoadConfigFromFile tests loading a minimal config file over defaults.
func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "123456:test-token"
  owner_chat_id: 235538565
logger:
  level: debug
market:
  timeout: 5s
  crypto_alert_move: 0.05
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Telegram.Token != "123456:test-token" {
		t.Errorf("token = %q, want file value", cfg.Telegram.Token)
	}
	if cfg.Telegram.OwnerChatID != 235538565 {
		t.Errorf("owner_chat_id = %d, want 235538565", cfg.Telegram.OwnerChatID)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("logger level = %q, want debug", cfg.Logger.Level)
	}
	if cfg.Market.Timeout != 5*time.Second {
		t.Errorf("market timeout = %v, want 5s", cfg.Market.Timeout)
	}
	if cfg.Market.CryptoAlertMove != 0.05 {
		t.Errorf("crypto_alert_move = %v, want 0.05", cfg.Market.CryptoAlertMove)
	}

	// Untouched sections keep their defaults.
	if cfg.Market.AssetAlertMove != DefaultAssetAlertMove {
		t.Errorf("asset_alert_move = %v, want default %v", cfg.Market.AssetAlertMove, DefaultAssetAlertMove)
	}
	if len(cfg.Market.Crypto) != len(DefaultCrypto) {
		t.Errorf("crypto watch list = %d entries, want default %d", len(cfg.Market.Crypto), len(DefaultCrypto))
	}
	if cfg.Messages.Welcome != DefaultMsgWelcome {
		t.Errorf("welcome message = %q, want default", cfg.Messages.Welcome)
	}
	if _, ok := cfg.Scheduler.Tasks["price_watch"]; !ok {
		t.Errorf("default scheduler tasks missing price_watch: %v", cfg.Scheduler.Tasks)
	}
}

// TestLoadConfigFromEnv tests BOT_* environment overrides without a config
// file.
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "env-token")
	t.Setenv("BOT_TELEGRAM_OWNER_CHAT_ID", "42")
	t.Setenv("BOT_LOGGER_LEVEL", "warn")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Telegram.Token != "env-token" {
		t.Errorf("token = %q, want env value", cfg.Telegram.Token)
	}
	if cfg.Telegram.OwnerChatID != 42 {
		t.Errorf("owner_chat_id = %d, want 42", cfg.Telegram.OwnerChatID)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("logger level = %q, want warn", cfg.Logger.Level)
	}
}

// TestLoadConfigValidation tests that invalid configurations are rejected.
func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "missing token",
			content: "telegram:\n  owner_chat_id: 42\n",
		},
		{
			name:    "missing owner chat",
			content: "telegram:\n  token: \"t\"\n",
		},
		{
			name:    "bad log level",
			content: "telegram:\n  token: \"t\"\n  owner_chat_id: 42\nlogger:\n  level: loud\n",
		},
		{
			name:    "threshold out of range",
			content: "telegram:\n  token: \"t\"\n  owner_chat_id: 42\nmarket:\n  crypto_alert_move: 1.5\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig accepted invalid config %q", tc.name)
			} else if !strings.Contains(err.Error(), "validation") {
				t.Errorf("expected a validation error, got: %v", err)
			}
		})
	}
}

// TestLoadConfigMalformedFile tests that YAML syntax errors surface.
func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "telegram: [not a map\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted malformed YAML")
	}
}

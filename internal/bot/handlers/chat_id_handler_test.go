package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/ayurov/pulsebot/internal/config"
)

// TestBuildChatIDReply tests chat-id echo rendering for every legal id
// shape, including negative group and supergroup ids.
func TestBuildChatIDReply(t *testing.T) {
	t.Parallel()

	type replyTestCase struct {
		name     string
		chatID   int64
		expected string
	}

	cases := []replyTestCase{
		{name: "private chat", chatID: 123456789, expected: "Твой chat_id: 123456789"},
		{name: "supergroup", chatID: -100987654321, expected: "Твой chat_id: -100987654321"},
		{name: "group", chatID: -4567, expected: "Твой chat_id: -4567"},
		{name: "zero", chatID: 0, expected: "Твой chat_id: 0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := BuildChatIDReply(config.DefaultMsgChatID, tc.chatID)
			if got != tc.expected {
				t.Errorf("BuildChatIDReply(%d) = %q, want %q", tc.chatID, got, tc.expected)
			}
		})
	}
}

// TestIsPlainText tests the command vs plain-text classification. The
// handler must never react to anything beyond this classification.
func TestIsPlainText(t *testing.T) {
	t.Parallel()

	type classifyTestCase struct {
		name     string
		update   *models.Update
		expected bool
	}

	textUpdate := func(text string) *models.Update {
		return &models.Update{Message: &models.Message{Text: text, Chat: models.Chat{ID: 1}}}
	}

	testGroups := map[string][]classifyTestCase{
		"Plain Text": {
			{name: "simple text", update: textUpdate("привет"), expected: true},
			{name: "text with slash inside", update: textUpdate("a/b"), expected: true},
			{name: "multiline text", update: textUpdate("line one\n/start"), expected: true},
		},
		"Commands And Non-Text": {
			{name: "start command", update: textUpdate("/start"), expected: false},
			{name: "unknown command", update: textUpdate("/whoami"), expected: false},
			{name: "empty text", update: textUpdate(""), expected: false},
			{name: "nil message", update: &models.Update{}, expected: false},
			{name: "nil update", update: nil, expected: false},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()
					if got := IsPlainText(tc.update); got != tc.expected {
						t.Errorf("IsPlainText() = %v, want %v", got, tc.expected)
					}
				})
			}
		})
	}
}

// TestWelcomeMessageDefault pins the /start greeting text.
func TestWelcomeMessageDefault(t *testing.T) {
	t.Parallel()

	expected := "✅ Бот запущен! Напиши мне что-нибудь — я покажу твой chat_id."
	if config.DefaultMsgWelcome != expected {
		t.Errorf("default welcome message = %q, want %q", config.DefaultMsgWelcome, expected)
	}
}

// TestBuildStatusText tests the /status reply layout.
func TestBuildStatusText(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 23, 9, 30, 0, 0, time.UTC)
	got := BuildStatusText(now)

	if !strings.HasPrefix(got, "⏰ 2025-08-23 09:30 UTC\n") {
		t.Errorf("status text should start with the UTC timestamp, got %q", got)
	}
	for _, want := range []string{
		"📦 Идея портфеля:",
		"• S&P 500 (через SPY) — рост",
		"Риски ближайшего плана:",
		"• Отчёты мейджоров США",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("status text missing %q:\n%s", want, got)
		}
	}
}

package logger

import (
	"testing"
	"unicode/utf8"
)

// TestTruncateString tests preview truncation, including rune-boundary
// handling for Cyrillic text.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	type truncateTestCase struct {
		name     string
		input    string
		maxLen   int
		expected string
	}

	testGroups := map[string][]truncateTestCase{
		"ASCII": {
			{name: "shorter than limit", input: "hello", maxLen: 50, expected: "hello"},
			{name: "exactly at limit", input: "hello", maxLen: 5, expected: "hello"},
			{name: "over limit", input: "hello world", maxLen: 8, expected: "hello..."},
			{name: "empty string", input: "", maxLen: 10, expected: ""},
			{name: "tiny limit", input: "hello", maxLen: 3, expected: "..."},
		},
		"Cyrillic": {
			{name: "shorter than limit", input: "привет", maxLen: 10, expected: "привет"},
			{name: "exactly at limit in runes", input: "привет", maxLen: 6, expected: "привет"},
			{name: "over limit cuts on rune boundary", input: "привет мир", maxLen: 8, expected: "приве..."},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()

					got := truncateString(tc.input, tc.maxLen)
					if got != tc.expected {
						t.Errorf("truncateString(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.expected)
					}
					if !utf8.ValidString(got) {
						t.Errorf("truncateString(%q, %d) produced invalid UTF-8: %q", tc.input, tc.maxLen, got)
					}
				})
			}
		})
	}
}

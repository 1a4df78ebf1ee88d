package market

import (
	"math"
	"strings"
	"testing"
	"time"
)

// TestPctChange tests relative change computation, including the baseline
// cases that must suppress alerts.
func TestPctChange(t *testing.T) {
	t.Parallel()

	type pctTestCase struct {
		name       string
		prev       float64
		curr       float64
		expected   float64
		computable bool
	}

	testGroups := map[string][]pctTestCase{
		"Computable Changes": {
			{name: "increase", prev: 100, curr: 104, expected: 0.04, computable: true},
			{name: "decrease", prev: 100, curr: 99, expected: -0.01, computable: true},
			{name: "no change", prev: 50, curr: 50, expected: 0, computable: true},
			{name: "doubling", prev: 10, curr: 20, expected: 1.0, computable: true},
			{name: "negative baseline", prev: -100, curr: -104, expected: 0.04, computable: true},
		},
		"Suppressed Baselines": {
			{name: "zero baseline", prev: 0, curr: 100, computable: false},
			{name: "NaN baseline", prev: math.NaN(), curr: 100, computable: false},
			{name: "NaN current", prev: 100, curr: math.NaN(), computable: false},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()
					got, ok := PctChange(tc.prev, tc.curr)
					if ok != tc.computable {
						t.Fatalf("PctChange(%v, %v) computable = %v, want %v", tc.prev, tc.curr, ok, tc.computable)
					}
					if !tc.computable {
						return
					}
					if math.Abs(got-tc.expected) > 1e-9 {
						t.Errorf("PctChange(%v, %v) = %v, want %v", tc.prev, tc.curr, got, tc.expected)
					}
				})
			}
		})
	}
}

// TestFmtPrice tests price formatting, including the unavailable dash.
func TestFmtPrice(t *testing.T) {
	t.Parallel()

	type fmtTestCase struct {
		name      string
		price     float64
		available bool
		suffix    string
		expected  string
	}

	cases := []fmtTestCase{
		{name: "usd price", price: 123.456, available: true, suffix: " $", expected: "123.5 $"},
		{name: "eur price", price: 99.12, available: true, suffix: " €", expected: "99.12 €"},
		{name: "large price uses exponent", price: 113850, available: true, suffix: " $", expected: "1.138e+05 $"},
		{name: "small price", price: 0.08123, available: true, suffix: " $", expected: "0.08123 $"},
		{name: "unavailable", price: 0, available: false, suffix: " $", expected: "—"},
		{name: "no suffix", price: 4, available: true, suffix: "", expected: "4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FmtPrice(tc.price, tc.available, tc.suffix); got != tc.expected {
				t.Errorf("FmtPrice(%v, %v, %q) = %q, want %q", tc.price, tc.available, tc.suffix, got, tc.expected)
			}
		})
	}
}

// TestSignPct tests signed percentage rendering.
func TestSignPct(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "positive", input: 0.042, expected: "+4.20%"},
		{name: "negative", input: -0.011, expected: "-1.10%"},
		{name: "zero", input: 0, expected: "+0.00%"},
		{name: "over hundred percent", input: 1.5, expected: "+150.00%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SignPct(tc.input); got != tc.expected {
				t.Errorf("SignPct(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCurrencySuffix(t *testing.T) {
	t.Parallel()

	if got := CurrencySuffix("USD"); got != " $" {
		t.Errorf("CurrencySuffix(USD) = %q, want %q", got, " $")
	}
	if got := CurrencySuffix("EUR"); got != " €" {
		t.Errorf("CurrencySuffix(EUR) = %q, want %q", got, " €")
	}
}

func TestFormatUTC(t *testing.T) {
	t.Parallel()

	moment := time.Date(2025, 8, 23, 11, 0, 0, 0, time.FixedZone("EET", 3*3600))
	if got := FormatUTC(moment); got != "2025-08-23 08:00 UTC" {
		t.Errorf("FormatUTC() = %q, want %q", got, "2025-08-23 08:00 UTC")
	}
}

// TestBuildSnapshot tests the full snapshot text layout.
func TestBuildSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 23, 11, 0, 0, 0, time.UTC)
	quotes := []Quote{
		{Symbol: "BTC", Kind: KindCrypto, Price: 65000, Currency: "USD", Available: true},
		{Symbol: "DOGE", Kind: KindCrypto, Currency: "USD", Available: false},
		{Symbol: "VWCE", Kind: KindAsset, Price: 131.42, Currency: "EUR", Ticker: "vwce.de", Available: true},
		{Symbol: "GOLD (XAU/USD)", Kind: KindAsset, Currency: "USD", Ticker: "xauusd.us", Available: false},
	}

	got := BuildSnapshot(quotes, now)
	expectedLines := []string{
		"⏰ 2025-08-23 11:00 UTC",
		"💹 Цены прямо сейчас:",
		"• BTC: 6.5e+04 $",
		"• DOGE: —",
		"• VWCE: 131.4 € (via vwce.de)",
		"• GOLD (XAU/USD): — (via xauusd.us)",
	}
	expected := strings.Join(expectedLines, "\n")

	if got != expected {
		t.Errorf("BuildSnapshot() =\n%s\nwant:\n%s", got, expected)
	}
}

package market

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PctChange returns the relative change from prev to curr. The second return
// value is false when no meaningful change can be computed (zero or NaN
// baseline), which is how a freshly seeded symbol skips its first alert.
func PctChange(prev, curr float64) (float64, bool) {
	if prev == 0 || math.IsNaN(prev) || math.IsNaN(curr) {
		return 0, false
	}
	return (curr - prev) / prev, true
}

// FmtPrice renders a price with 4 significant digits and a currency suffix,
// or a dash when the quote is unavailable.
func FmtPrice(price float64, available bool, suffix string) string {
	if !available {
		return "—"
	}
	return fmt.Sprintf("%.4g%s", price, suffix)
}

// SignPct renders a relative change as a signed percentage, e.g. "+4.20%".
func SignPct(x float64) string {
	return fmt.Sprintf("%+.2f%%", x*100)
}

// CurrencySuffix maps a quote currency to its display suffix.
func CurrencySuffix(currency string) string {
	if currency == "EUR" {
		return " €"
	}
	return " $"
}

// FormatUTC renders a timestamp the way all bot messages do.
func FormatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// BuildSnapshot renders the full price snapshot text used by the /prices
// command and the daily digest.
func BuildSnapshot(quotes []Quote, now time.Time) string {
	lines := make([]string, 0, len(quotes)+2)
	lines = append(lines, "⏰ "+FormatUTC(now))
	lines = append(lines, "💹 Цены прямо сейчас:")

	for _, q := range quotes {
		line := fmt.Sprintf("• %s: %s", q.Symbol, FmtPrice(q.Price, q.Available, CurrencySuffix(q.Currency)))
		if q.Ticker != "" {
			line += fmt.Sprintf(" (via %s)", q.Ticker)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

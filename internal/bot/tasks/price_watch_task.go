package tasks

import (
	"context"
	"fmt"
	"math"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/ayurov/pulsebot/internal/database"
	"github.com/ayurov/pulsebot/internal/market"
)

// newPriceWatchTask creates the scheduled task that compares fresh quotes
// against the persisted baseline and alerts the owner chat on moves beyond
// the configured thresholds (crypto and fund classes have separate ones).
func newPriceWatchTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "price_watch")

	return func(ctx context.Context) error {
		startTime := time.Now()

		quotes := deps.Market.FetchAll(ctx)

		baseline, err := deps.Store.GetLatestSnapshots(ctx)
		if err != nil {
			return fmt.Errorf("failed to load price baseline: %w", err)
		}

		alerts, snapshots := EvaluateQuotes(quotes, baseline,
			deps.Config.Market.CryptoAlertMove, deps.Config.Market.AssetAlertMove)

		for _, alert := range alerts {
			if _, err := deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: deps.Config.Telegram.OwnerChatID,
				Text:   alert,
			}); err != nil {
				log.ErrorContext(ctx, "Failed to send price alert", "error", err)
			}
		}

		// Update the baseline only after comparison, and only for symbols
		// that actually returned a price.
		if err := deps.Store.SaveSnapshots(ctx, snapshots); err != nil {
			return fmt.Errorf("failed to save price baseline: %w", err)
		}

		log.InfoContext(ctx, "Price watch cycle complete",
			"quotes", len(quotes), "alerts", len(alerts), "duration", time.Since(startTime))
		return nil
	}
}

// EvaluateQuotes compares quotes against the last persisted baseline. It
// returns formatted alert messages for moves beyond the per-kind threshold
// and the snapshots that become the next baseline. A symbol seen for the
// first time seeds the baseline without alerting.
func EvaluateQuotes(quotes []market.Quote, baseline map[string]*database.PriceSnapshot, cryptoMove, assetMove float64) ([]string, []*database.PriceSnapshot) {
	var alerts []string
	var snapshots []*database.PriceSnapshot

	for _, q := range quotes {
		if !q.Available {
			continue
		}

		threshold := cryptoMove
		if q.Kind == market.KindAsset {
			threshold = assetMove
		}

		if prev, ok := baseline[q.Symbol]; ok {
			if chg, computable := market.PctChange(prev.Price, q.Price); computable && math.Abs(chg) >= threshold {
				alerts = append(alerts, BuildAlertText(q, chg))
			}
		}

		snapshots = append(snapshots, &database.PriceSnapshot{
			Symbol: q.Symbol,
			Kind:   q.Kind,
			Price:  q.Price,
			Ticker: q.Ticker,
		})
	}

	return alerts, snapshots
}

// BuildAlertText renders a single threshold alert message.
func BuildAlertText(q market.Quote, chg float64) string {
	sign := "🔺"
	if chg < 0 {
		sign = "🔻"
	}
	return fmt.Sprintf("%s %s %s (с последней проверки)\nТекущая: %s",
		sign, q.Symbol, market.SignPct(chg),
		market.FmtPrice(q.Price, true, market.CurrencySuffix(q.Currency)))
}

package database

import "time"

// Snapshot kinds, matching the two alert threshold classes.
const (
	KindCrypto = "crypto"
	KindAsset  = "asset"
)

// PriceSnapshot is the last observed price for a watched symbol. The price
// watch task compares fresh quotes against the latest snapshot per symbol to
// decide whether a move crosses the alert threshold, then writes the new
// baseline. Persisting snapshots keeps the baseline across restarts.
type PriceSnapshot struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Symbol string  `db:"symbol"`
	Kind   string  `db:"kind"`
	Price  float64 `db:"price"`
	Ticker string  `db:"ticker"` // source ticker actually used (empty for crypto)
}

// Package market implements the market data client. Crypto spot prices come
// from the CoinGecko simple-price API, fund and commodity closes from the
// Stooq CSV quote endpoint with per-asset fallback tickers.
package market

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ayurov/pulsebot/internal/config"
)

// Quote kinds, matching the two alert threshold classes.
const (
	KindCrypto = "crypto"
	KindAsset  = "asset"
)

// Quote is a single fetched price. Available is false when every source for
// the symbol failed; such quotes still appear in snapshots as a dash.
type Quote struct {
	Symbol    string
	Kind      string
	Price     float64
	Ticker    string // Stooq ticker actually used, empty for crypto
	Currency  string // USD or EUR
	Available bool
}

// Client fetches current prices for the configured watch list.
type Client interface {
	// FetchAll returns quotes for every configured symbol in configuration
	// order, crypto first. Per-symbol failures are reported as unavailable
	// quotes rather than errors.
	FetchAll(ctx context.Context) []Quote
}

type httpMarketClient struct {
	cfg        config.MarketConfig
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a market data client from the given configuration.
func NewClient(cfg config.MarketConfig, log *slog.Logger) Client {
	if log == nil {
		log = slog.Default()
	}
	return &httpMarketClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With("component", "market_client"),
	}
}

func (c *httpMarketClient) FetchAll(ctx context.Context) []Quote {
	quotes := make([]Quote, 0, len(c.cfg.Crypto)+len(c.cfg.Assets))

	cryptoPrices, err := c.fetchCryptoPrices(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "CoinGecko fetch failed", "error", err)
		cryptoPrices = nil
	}

	for _, asset := range c.cfg.Crypto {
		q := Quote{Symbol: asset.Symbol, Kind: KindCrypto, Currency: "USD"}
		if price, ok := cryptoPrices[asset.ID]; ok {
			q.Price = price
			q.Available = true
		}
		quotes = append(quotes, q)
	}

	for _, asset := range c.cfg.Assets {
		quotes = append(quotes, c.fetchAssetQuote(ctx, asset))
	}

	return quotes
}

// fetchCryptoPrices issues a single CoinGecko simple-price request for every
// configured id and returns a map of id to USD price.
func (c *httpMarketClient) fetchCryptoPrices(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(c.cfg.Crypto))
	for _, asset := range c.cfg.Crypto {
		ids = append(ids, asset.ID)
	}
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		strings.TrimSuffix(c.cfg.CoinGeckoURL, "/"), url.QueryEscape(strings.Join(ids, ",")))

	body, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	// Response shape: {"bitcoin": {"usd": 12345.6}, ...}
	var parsed map[string]map[string]float64
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse CoinGecko response: %w", err)
	}

	prices := make(map[string]float64, len(parsed))
	for id, currencies := range parsed {
		if usd, ok := currencies["usd"]; ok {
			prices[id] = usd
		}
	}

	c.log.DebugContext(ctx, "Fetched crypto prices", "requested", len(ids), "received", len(prices))
	return prices, nil
}

// fetchAssetQuote tries the asset's tickers in order and returns the first
// usable close price.
func (c *httpMarketClient) fetchAssetQuote(ctx context.Context, asset config.FundAsset) Quote {
	q := Quote{Symbol: asset.Name, Kind: KindAsset, Currency: asset.Currency}

	for _, ticker := range asset.Tickers {
		price, err := c.fetchStooqClose(ctx, ticker)
		if err != nil {
			c.log.WarnContext(ctx, "Stooq quote failed", "ticker", ticker, "error", err)
			continue
		}
		q.Price = price
		q.Ticker = ticker
		q.Available = true
		return q
	}

	// Attribute the failure to the primary ticker like the snapshot shows.
	q.Ticker = asset.Tickers[0]
	return q
}

// fetchStooqClose fetches the close price for a ticker from the Stooq CSV
// quote endpoint.
func (c *httpMarketClient) fetchStooqClose(ctx context.Context, ticker string) (float64, error) {
	reqURL := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv",
		strings.TrimSuffix(c.cfg.StooqURL, "/"), url.QueryEscape(ticker))

	body, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	closeIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "Close") {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		return 0, fmt.Errorf("no Close column in Stooq response for %s", ticker)
	}

	row, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("no quote row in Stooq response for %s: %w", ticker, err)
	}
	if closeIdx >= len(row) {
		return 0, fmt.Errorf("malformed quote row for %s", ticker)
	}

	raw := strings.TrimSpace(row[closeIdx])
	if raw == "" || strings.EqualFold(raw, "N/A") {
		return 0, fmt.Errorf("no close price available for %s", ticker)
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid close price %q for %s: %w", raw, ticker, err)
	}

	return price, nil
}

// getWithRetries issues a GET request, retrying on transport errors and 5xx
// responses up to the configured retry count.
func (c *httpMarketClient) getWithRetries(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.DebugContext(ctx, "Retrying market request", "attempt", attempt+1, "url", reqURL)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
		}

		body, retriable, err := c.get(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retriable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.cfg.MaxRetries, lastErr)
}

func (c *httpMarketClient) get(ctx context.Context, reqURL string) (body []byte, retriable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, false, nil
}

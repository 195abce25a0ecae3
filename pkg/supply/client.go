package supply

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultFetchAttempts bounds retries against the stats feed.
	DefaultFetchAttempts = 5
	// DefaultFetchTimeout is the per-attempt request timeout.
	DefaultFetchTimeout = 4 * time.Second

	retryInterval = 500 * time.Millisecond
)

// ClientConfig tunes the stats feed client.
type ClientConfig struct {
	// BaseURL is the stats endpoint, e.g.
	// https://backend-polygon.gains.trade/stats
	BaseURL string

	// DeadWalletBalance is subtracted from every reading; tokens in
	// the dead wallet are out of circulation but still counted by
	// the feed.
	DeadWalletBalance int64

	// Attempts and Timeout default to the package constants when
	// zero.
	Attempts int
	Timeout  time.Duration
}

// Client fetches supply readings and history from the stats feed with
// bounded retry. An optional HistoryCache short-circuits repeated
// history reads.
type Client struct {
	cfg   ClientConfig
	http  *http.Client
	cache *HistoryCache
}

// NewClient creates a stats feed client.
func NewClient(cfg ClientConfig, cache *HistoryCache) *Client {
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultFetchAttempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		cache: cache,
	}
}

// statsResponse mirrors the feed's JSON payload. Entries are most
// recent first.
type statsResponse struct {
	Stats []statsEntry `json:"stats"`
}

type statsEntry struct {
	Date        string  `json:"date"`
	TokenSupply float64 `json:"token_supply"`
}

// CurrentSupply returns the most recent reading, adjusted for the
// dead wallet.
func (c *Client) CurrentSupply(ctx context.Context) (int64, error) {
	resp, err := c.fetchStats(ctx)
	if err != nil {
		return 0, err
	}
	if len(resp.Stats) == 0 {
		return 0, ErrNoData
	}
	return int64(math.Round(resp.Stats[0].TokenSupply)) - c.cfg.DeadWalletBalance, nil
}

// History returns all feed entries, most recent first, adjusted for
// the dead wallet. Entries with unparseable dates are skipped.
func (c *Client) History(ctx context.Context) ([]Entry, error) {
	if c.cache != nil {
		if entries, ok := c.cache.Get(ctx); ok {
			return entries, nil
		}
	}

	resp, err := c.fetchStats(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Stats) == 0 {
		return nil, ErrNoData
	}

	entries := make([]Entry, 0, len(resp.Stats))
	for _, e := range resp.Stats {
		ts, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			logrus.Warnf("skipping history entry with bad date %q: %v", e.Date, err)
			continue
		}
		entries = append(entries, Entry{
			Date:   ts,
			Supply: int64(math.Round(e.TokenSupply)) - c.cfg.DeadWalletBalance,
		})
	}
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	if c.cache != nil {
		c.cache.Set(ctx, entries)
	}
	return entries, nil
}

func (c *Client) fetchStats(ctx context.Context) (*statsResponse, error) {
	var resp *statsResponse
	start := time.Now()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), uint64(c.cfg.Attempts-1)),
		ctx,
	)

	err := backoff.Retry(func() error {
		r, err := c.fetchOnce(ctx)
		if err != nil {
			logrus.Warnf("supply fetch failed: %v, retrying...", err)
			return err
		}
		resp = r
		return nil
	}, policy)
	observeFetch("stats", start, err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch supply stats after %d attempts: %w", c.cfg.Attempts, err)
	}
	return resp, nil
}

func (c *Client) fetchOnce(ctx context.Context) (*statsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("stats feed returned status %d", res.StatusCode)
	}

	var parsed statsResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode stats response: %w", err)
	}
	return &parsed, nil
}

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

// WhaleClient reads the tracked whale wallet balance from a balance
// endpoint. The endpoint is fed by an external scraper; this client
// only consumes its JSON output.
type WhaleClient struct {
	url      string
	attempts int
	http     *http.Client
}

// NewWhaleClient creates a whale balance client. Attempts and timeout
// fall back to the package defaults when zero.
func NewWhaleClient(url string, attempts int, timeout time.Duration) *WhaleClient {
	if attempts <= 0 {
		attempts = DefaultFetchAttempts
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &WhaleClient{
		url:      url,
		attempts: attempts,
		http:     &http.Client{Timeout: timeout},
	}
}

type whaleResponse struct {
	Balance float64 `json:"balance"`
}

// CurrentSupply returns the whale's balance. It satisfies Fetcher so
// the engine can treat the whale as just another boss health source.
func (c *WhaleClient) CurrentSupply(ctx context.Context) (int64, error) {
	var balance int64
	start := time.Now()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), uint64(c.attempts-1)),
		ctx,
	)

	err := backoff.Retry(func() error {
		b, err := c.fetchOnce(ctx)
		if err != nil {
			logrus.Warnf("whale balance fetch failed: %v, retrying...", err)
			return err
		}
		balance = b
		return nil
	}, policy)
	observeFetch("whale", start, err)

	if err != nil {
		return 0, fmt.Errorf("failed to fetch whale balance after %d attempts: %w", c.attempts, err)
	}
	return balance, nil
}

func (c *WhaleClient) fetchOnce(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build whale balance request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return 0, fmt.Errorf("whale balance endpoint returned status %d", res.StatusCode)
	}

	var parsed whaleResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode whale balance response: %w", err)
	}
	return int64(math.Round(parsed.Balance)), nil
}

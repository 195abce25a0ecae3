// Package supply talks to the public token statistics feed. It owns
// the bounded retry policy for all remote reads; callers only see a
// value or a failure.
package supply

import (
	"context"
	"errors"
	"time"
)

// Entry is one historical supply observation.
type Entry struct {
	Date   time.Time
	Supply int64
}

// Fetcher reads the current circulating supply.
type Fetcher interface {
	CurrentSupply(ctx context.Context) (int64, error)
}

// HistoryFetcher reads the full supply history, most recent first.
type HistoryFetcher interface {
	History(ctx context.Context) ([]Entry, error)
}

// ErrNoData indicates the feed responded but carried no entries.
var ErrNoData = errors.New("supply feed returned no data")

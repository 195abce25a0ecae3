package supply

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultCacheTTL keeps cached history fresh enough for burn
	// reports while sparing the upstream from command bursts.
	DefaultCacheTTL = 5 * time.Minute

	historyCacheKey = "gainsmud:supply_history"
)

// HistoryCache caches the supply history payload in Redis. Cache
// failures are logged and treated as misses; the feed remains the
// source of truth.
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache creates a cache on the given client. TTL falls back
// to DefaultCacheTTL when zero.
func NewHistoryCache(client *redis.Client, ttl time.Duration) *HistoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &HistoryCache{client: client, ttl: ttl}
}

type cachedEntry struct {
	Date   time.Time `json:"date"`
	Supply int64     `json:"supply"`
}

// Get returns the cached history and whether it was present.
func (c *HistoryCache) Get(ctx context.Context) ([]Entry, bool) {
	data, err := c.client.Get(ctx, historyCacheKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logrus.Warnf("history cache read failed: %v", err)
		return nil, false
	}

	var cached []cachedEntry
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		logrus.Warnf("history cache held malformed payload, ignoring: %v", err)
		return nil, false
	}

	entries := make([]Entry, len(cached))
	for i, e := range cached {
		entries[i] = Entry{Date: e.Date, Supply: e.Supply}
	}
	return entries, true
}

// Set stores the history payload with the cache TTL.
func (c *HistoryCache) Set(ctx context.Context, entries []Entry) {
	cached := make([]cachedEntry, len(entries))
	for i, e := range entries {
		cached[i] = cachedEntry{Date: e.Date, Supply: e.Supply}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		logrus.Warnf("failed to marshal history cache payload: %v", err)
		return
	}

	if err := c.client.Set(ctx, historyCacheKey, data, c.ttl).Err(); err != nil {
		logrus.Warnf("history cache write failed: %v", err)
	}
}

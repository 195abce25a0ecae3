package supply

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestHistoryCacheRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewHistoryCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("Get() on empty cache should miss")
	}

	entries := []Entry{
		{Date: time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC), Supply: 29_950_000},
		{Date: time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC), Supply: 30_000_000},
	}
	cache.Set(ctx, entries)

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("Get() after Set() should hit")
	}
	if len(got) != 2 || got[0].Supply != 29_950_000 || !got[1].Date.Equal(entries[1].Date) {
		t.Errorf("Get() = %v, expected %v", got, entries)
	}
}

func TestHistoryCacheExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewHistoryCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, []Entry{{Date: time.Now().UTC(), Supply: 1}})
	mr.FastForward(2 * time.Minute)

	if _, ok := cache.Get(ctx); ok {
		t.Error("Get() after TTL should miss")
	}
}

func TestHistoryCacheMalformedPayload(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewHistoryCache(client, time.Minute)

	mr.Set(historyCacheKey, "not json")

	if _, ok := cache.Get(context.Background()); ok {
		t.Error("Get() with malformed payload should miss, not fail")
	}
}

func TestClientHistoryUsesCache(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"stats":[{"date":"2026-08-29T06:00:00Z","token_supply":100}]}`))
	}))
	defer srv.Close()

	redisClient, _ := setupTestRedis(t)
	cache := NewHistoryCache(redisClient, time.Minute)
	client := NewClient(ClientConfig{BaseURL: srv.URL}, cache)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.History(ctx); err != nil {
			t.Fatalf("History() call %d error = %v", i, err)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("upstream saw %d calls, expected 1 (cache serving the rest)", calls.Load())
	}
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/geneotech/GainsMUD/internal/config"
	"github.com/geneotech/GainsMUD/internal/console"
	"github.com/geneotech/GainsMUD/internal/server"
	"github.com/geneotech/GainsMUD/pkg/bot"
	"github.com/geneotech/GainsMUD/pkg/burn"
	"github.com/geneotech/GainsMUD/pkg/game"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/state"
	"github.com/geneotech/GainsMUD/pkg/supply"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	gameCfg           *gamecfg.Provider
	redisClient       *redis.Client
	metricsServer     *server.MetricsServer
	console           *console.Console
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order: Redis (optional
// history cache), game tuning config, the state store and supply
// clients, the engine with its command surface, then the metrics
// server and telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if cfg.RedisEnabled {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	gameCfg, err := gamecfg.NewProvider(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config from %s: %w", cfg.GameConfigPath, err)
	}
	if err := gameCfg.Watch(); err != nil {
		return nil, fmt.Errorf("failed to watch game config: %w", err)
	}
	app.gameCfg = gameCfg

	store := state.NewFileStore(cfg.DataFile)

	var cache *supply.HistoryCache
	if app.redisClient != nil {
		cache = supply.NewHistoryCache(app.redisClient, cfg.HistoryCacheTTL)
	}

	statsClient := supply.NewClient(supply.ClientConfig{
		BaseURL:           cfg.StatsBackendURL,
		DeadWalletBalance: cfg.DeadWalletBalance,
		Attempts:          cfg.FetchAttempts,
		Timeout:           cfg.FetchTimeout,
	}, cache)

	var whaleFetcher supply.Fetcher
	if cfg.WhaleBalanceURL != "" {
		whaleFetcher = supply.NewWhaleClient(cfg.WhaleBalanceURL, cfg.FetchAttempts, cfg.FetchTimeout)
	}

	engine := game.NewEngine(store, gameCfg, statsClient, whaleFetcher)
	burns := burn.NewAggregator(statsClient, gameCfg)

	registry := bot.NewRegistry(time.Now())
	if err := bot.NewService(engine, burns, gameCfg).RegisterAll(registry); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	app.console = console.New(registry, "console")

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client backing the history cache.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

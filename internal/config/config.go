// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"GainsMUD"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Game configuration
	// ============================================================
	DataFile       string `env:"DATA_FILE" envDefault:"gmud_data.json"`
	GameConfigPath string `env:"GAME_CONFIG_PATH" envDefault:"config/game.yaml"`

	// ============================================================
	// Supply feed configuration
	// ============================================================
	StatsBackendURL   string        `env:"STATS_BACKEND_URL" envDefault:"https://backend-polygon.gains.trade/stats"`
	WhaleBalanceURL   string        `env:"WHALE_BALANCE_URL"`
	DeadWalletBalance int64         `env:"DEAD_WALLET_BALANCE" envDefault:"0"`
	FetchAttempts     int           `env:"SUPPLY_FETCH_ATTEMPTS" envDefault:"5"`
	FetchTimeout      time.Duration `env:"SUPPLY_FETCH_TIMEOUT" envDefault:"4s"`

	// ============================================================
	// Redis configuration (optional supply-history cache)
	// ============================================================
	RedisEnabled      bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	HistoryCacheTTL   time.Duration `env:"HISTORY_CACHE_TTL" envDefault:"5m"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint  string `env:"ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"gainsmud-bot"`
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Run starts the application and blocks until the console session ends
// or a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleErr := make(chan error, 1)
	go func() {
		consoleErr <- a.console.Run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logrus.Info("shutdown signal received")
	case err := <-consoleErr:
		runErr = err
		logrus.Info("console session ended")
	}

	if err := a.Shutdown(); err != nil {
		return err
	}
	return runErr
}

// Shutdown gracefully shuts down all application components.
//
// Components are shut down in reverse dependency order: the metrics
// server first, then the game config watcher, then external
// connections, and finally the telemetry pipeline so that spans
// emitted during shutdown still get flushed. Errors are logged but
// don't stop the sequence; each component gets a chance to clean up.
func (a *App) Shutdown() error {
	logrus.Info("shutting down application...")

	// The run context is already canceled by the time we get here, so
	// shutdown gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	if err := a.gameCfg.Close(); err != nil {
		logrus.Errorf("game config watcher close error: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}

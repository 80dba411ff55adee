package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/WagerBot_Go/internal/bootstrap"
	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/handler"
	"github.com/osse101/WagerBot_Go/internal/server"
)

func main() {
	warnings, err := config.ValidateEnvWithWarnings(config.APIRequiredEnvVars...)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Environment check", "warning", w)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		slog.Error("WagerBot API stopped with an error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	startCtx, cancel := context.WithTimeout(context.Background(), bootstrap.StartupTimeout)
	defer cancel()

	pool, store, err := bootstrap.InitializeStore(startCtx, cfg)
	if err != nil {
		return err
	}

	redisClient, cache, err := bootstrap.InitializeCache(startCtx, cfg)
	if err != nil {
		pool.Close()
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		pool.Close()
		return err
	}

	svc := bootstrap.InitializeServices(cfg, store, events.Bus, cache)
	bootstrap.RegisterEventHandlers(events.Bus, svc.Leaderboard)
	bootstrap.SyncRegions(startCtx, svc.Regions)

	// The betting close is announced by the Discord bot process
	workers := bootstrap.StartWorkers(cfg, svc, events.Bus, false)

	checks := map[string]handler.HealthChecker{"database": pool}
	if redisClient != nil {
		checks["redis"] = handler.HealthCheckFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, server.Services{
		Regions:         svc.Regions,
		Scoring:         svc.Scoring,
		Leaderboard:     svc.Leaderboard,
		Wagers:          svc.Wagers,
		Clock:           svc.Clock,
		HelpLoader:      svc.Help,
		HelpFormatter:   svc.HelpFormatter,
		ReadinessChecks: checks,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigs:
	case runErr = <-serverErr:
	}

	ctx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:  srv,
		Workers: workers,
		Events:  events,
		Redis:   redisClient,
		DB:      pool,
	})
	return runErr
}

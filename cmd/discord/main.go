package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/osse101/WagerBot_Go/internal/bootstrap"
	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/discord"
)

func main() {
	warnings, err := config.ValidateEnvWithWarnings(config.DiscordRequiredEnvVars...)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Environment check", "warning", w)
	}

	cfg, err := config.LoadBot()
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
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// run wires the game services in-process and runs the bot until a signal arrives
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

	bot, err := discord.New(discord.Config{
		Token:             cfg.Discord.Token,
		AppID:             cfg.Discord.AppID,
		ModeratorIDs:      cfg.Discord.ModeratorIDs,
		AllowedChannelIDs: cfg.Discord.AllowedChannelIDs,
		AnnounceChannelID: cfg.Discord.AnnounceChannelID,
		BetNoun:           cfg.Game.BetNoun,
		Clock:             svc.Clock,
	}, discord.Services{
		Regions:       svc.Regions,
		Scoring:       svc.Scoring,
		Leaderboard:   svc.Leaderboard,
		Wagers:        svc.Wagers,
		Help:          svc.Help,
		HelpFormatter: svc.HelpFormatter,
	})
	if err != nil {
		pool.Close()
		return err
	}

	if cfg.Discord.AnnounceChannelID != "" {
		slog.Info("Announcements enabled", "channel_id", cfg.Discord.AnnounceChannelID)
	}
	discord.NewResultAnnouncer(bot).Register(events.Bus)
	workers := bootstrap.StartWorkers(cfg, svc, events.Bus, true)

	httpServer := discord.NewHTTPServer(strconv.Itoa(cfg.Discord.InternalPort), bot, pool.Ping)
	httpServer.Start()

	bot.RegisterAll()
	if cfg.Discord.ForceCommandSync {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.Discord.ForceCommandSync); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	// Run returns after the bot has expired pending confirmations and closed the session
	runErr := bot.Run()

	httpServer.Stop()

	ctx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Workers: workers,
		Events:  events,
		Redis:   redisClient,
		DB:      pool,
	})
	return runErr
}

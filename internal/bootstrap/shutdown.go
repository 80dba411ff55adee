package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Stopper is a server that drains in-flight requests on Stop
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server  Stopper
	Workers *Workers
	Events  *EventSystem
	Redis   *redis.Client
	DB      *pgxpool.Pool
}

// GracefulShutdown stops the application components in order:
// 1. Server (stop accepting new requests)
// 2. Background workers (cancel timers, finish in-flight jobs)
// 3. Event publisher (flush pending deliveries to Kafka)
// 4. Cache and database connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	c.Workers.Shutdown(ctx)

	if c.Events != nil {
		if err := c.Events.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error(LogMsgCloseFailed, "target", "redis", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/database"
	"github.com/osse101/WagerBot_Go/internal/database/postgres"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/repository"
)

// InitializeStore connects to Postgres, applies pending migrations and
// returns the record store over the pool. The caller closes the pool.
func InitializeStore(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, repository.Store, error) {
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	return pool, postgres.NewStore(pool), nil
}

// InitializeCache connects the Redis leaderboard cache. Without REDIS_ADDR
// both results are nil and leaderboards are computed on every request.
func InitializeCache(ctx context.Context, cfg *config.Config) (*redis.Client, leaderboard.Cache, error) {
	if cfg.RedisAddr == "" {
		slog.Info(LogMsgRedisDisabled)
		return nil, nil, nil
	}

	client, err := leaderboard.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}
	slog.Info(LogMsgRedisConnected, "addr", cfg.RedisAddr, "ttl", cfg.LeaderboardCacheTTL)
	return client, leaderboard.NewRedisCache(client, cfg.LeaderboardCacheTTL), nil
}

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/WagerBot_Go/internal/database"
)

var (
	testPool     *pgxpool.Pool
	testPoolErr  error
	testPoolOnce sync.Once
)

// setupTestPool starts one Postgres container for the package, applies
// migrations and truncates all tables before handing the pool to the test.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testPoolOnce.Do(func() {
		testPool, testPoolErr = startContainer(context.Background())
	})
	if testPoolErr != nil {
		t.Skipf("Skipping integration test: database not available: %v", testPoolErr)
	}

	_, err := testPool.Exec(context.Background(), "TRUNCATE regions, wagers, results, scores RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return testPool
}

func startContainer(ctx context.Context) (pool *pgxpool.Pool, err error) {
	// testcontainers panics when Docker is unavailable
	defer func() {
		if r := recover(); r != nil {
			pool, err = nil, errPanic{r}
		}
	}()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	pool, err = database.NewPool(ctx, database.PoolConfig{ConnString: connStr, MaxConns: 5})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	return pool, nil
}

type errPanic struct{ v any }

func (e errPanic) Error() string {
	return fmt.Sprintf("testcontainers panic: %v", e.v)
}

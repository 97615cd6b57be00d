// Package testutil provides shared test setup helpers for the data and
// adapter layers. Postgres and Redis backed tests skip automatically when
// the backing service is unavailable.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/devxconsultancy/assess-ui-api/internal/migrate"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB opens the test database, applies migrations, and truncates
// the auth tables. Tests are skipped when Postgres is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("TEST_DB_HOST", "localhost")
	port := envOr("TEST_DB_PORT", "5432")
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		envOr("TEST_DB_USER", "postgres"),
		envOr("TEST_DB_PASSWORD", "postgres"),
		net.JoinHostPort(host, port),
		envOr("TEST_DB_NAME", "assess_test"),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		t.Skipf("Postgres not available for testing at %s: %v", host, pingErr)
	}

	if migrateErr := migrate.Run(ctx, db); migrateErr != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", migrateErr)
	}

	CleanupTestDB(t, db)
	t.Cleanup(func() {
		CleanupTestDB(t, db)
		_ = db.Close()
	})
	return db
}

// CleanupTestDB removes all auth rows, respecting foreign keys.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, table := range []string{"users", "college_resources", "colleges"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clean up table %s: %v", table, err)
		}
	}
}

// SetupTestRedis creates a Redis client against TEST_REDIS_ADDR (default
// localhost:6379) and flushes the selected test database. Tests are skipped
// when Redis is unreachable.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := envOr("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

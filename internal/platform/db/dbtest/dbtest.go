// Package dbtest provides the shared database fixture for integration
// tests. Tests skip unless TEST_DATABASE_URL points at a disposable
// PostgreSQL instance; the fixture applies migrations and empties every
// table so each test starts clean.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"promoback/internal/platform/db"
)

var tables = []string{
	"contact_events",
	"manual_shifts",
	"shift_markers",
	"accounting_rows",
	"sessions",
	"approvals_log",
	"blocked_ips",
	"rate_periods",
	"organizations",
	"promoters",
}

// Pool connects, migrates, and truncates. The returned pool is closed when
// the test finishes.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, migrationsDir()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	return pool
}

// migrationsDir resolves the migrations directory relative to this file, so
// tests work regardless of which package directory they run from.
func migrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "..", "migrations")
}

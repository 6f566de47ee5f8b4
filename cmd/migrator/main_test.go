package main

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/Mothroom/D-D-Lite/internal/infra/pgtestutil"
)

// The seed set must not disturb the base set's version bookkeeping:
// after seeding, a base run against an already-migrated database has
// to stay a no-op instead of failing on the seed's version number.
func TestRunMigrations_SeedKeepsBaseRerunnable(t *testing.T) {
	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	if err := runMigrations(db, devFS, "test_data", seedMigrationsTable); err != nil {
		t.Fatalf("first seed run: %v", err)
	}

	// Seed reruns are no-ops too.
	if err := runMigrations(db, devFS, "test_data", seedMigrationsTable); err != nil {
		t.Fatalf("second seed run: %v", err)
	}

	if err := runMigrations(db, baseFS, "migrations", postgres.DefaultMigrationsTable); err != nil {
		t.Fatalf("base run after seeding: %v", err)
	}

	var gold int64
	if err := db.QueryRow(`SELECT gold FROM users WHERE id = 1`).Scan(&gold); err != nil {
		t.Fatalf("seeded user missing: %v", err)
	}
	if gold != 100 {
		t.Fatalf("seeded gold: want 100, got %d", gold)
	}

	var seedVersions int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations_seed`).Scan(&seedVersions); err != nil {
		t.Fatalf("seed version table missing: %v", err)
	}
	if seedVersions == 0 {
		t.Fatal("seed version table is empty after seed run")
	}
}

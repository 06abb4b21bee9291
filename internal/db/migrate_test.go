package db_test

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/trainhub/db"
	"github.com/garnizeh/trainhub/internal/db"
)

// Note: this test uses a throwaway sqlite database file to validate
// idempotent behavior of Migrate.
func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, tempDSN(t))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer d.Close()

	// Run Migrate using the embedded migrations and seed files included in package db
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	// Run again to ensure idempotency
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	// verify schema_migrations has at least one entry (embedded migrations applied)
	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	// verify known tables from the embedded migrations exist
	for _, table := range []string{"training_programs", "training_modules", "employees", "training_progress"} {
		var name string
		r := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := r.Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}

	// the default import schema should have been seeded
	var schemaCount int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM import_schemas`).Scan(&schemaCount); err != nil {
		t.Fatalf("scan import_schemas count: %v", err)
	}
	if schemaCount < 1 {
		t.Fatalf("expected seeded import schema, got %d rows", schemaCount)
	}
}

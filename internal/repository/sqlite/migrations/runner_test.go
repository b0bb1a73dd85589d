package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/matchbook/matchbook/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A single connection keeps the in-memory database alive between calls.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	files, err := migrations.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(applied) != len(files) {
		t.Fatalf("expected %d applied migrations, got %d", len(files), len(applied))
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		"tester", "test@example.com", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	applied, err := migrations.Run(ctx, db)
	if err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected nothing applied on second run, got %v", applied)
	}

	files, _ := migrations.Files()
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != len(files) {
		t.Fatalf("expected %d migration records, got %d", len(files), count)
	}
}

func TestFollowsRejectSelfEdge(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash) VALUES (1, 'solo', 'solo@example.com', 'x')",
	); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	_, err := db.ExecContext(ctx, "INSERT INTO follows (follower_id, followed_id) VALUES (1, 1)")
	if err == nil {
		t.Fatal("expected CHECK constraint to reject a self edge")
	}
}

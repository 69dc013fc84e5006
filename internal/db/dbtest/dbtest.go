// Package dbtest provides migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/studyokr/internal/db"
)

// New returns a sqlite database in t.TempDir() with every migration applied.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}

// User inserts a verified user and returns its id.
func User(t testing.TB, database *sqlx.DB, email string) string {
	t.Helper()

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := database.Exec(
		`INSERT INTO users (id, email, password_hash, email_verified_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, email, "x", now, now,
	)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	return id
}

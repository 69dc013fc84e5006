package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRunsMigrations(t *testing.T) {
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	require.NoError(t, RunMigrations(database.DB, "sqlite"))

	version, err := Version(database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	var count int
	err = database.Get(&count, `SELECT COUNT(*) FROM chat_messages`)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, MigrateDown(database.DB, "sqlite"))
	version, err = Version(database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"./data/app.db", "./data/app.db"},
		{"./data/app.db?_pragma=foreign_keys(1)", "./data/app.db"},
		{"file:/tmp/app.db?mode=rwc", "/tmp/app.db"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqlitePath(tt.in), tt.in)
	}
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "mysql", getDialect("mysql"))
}

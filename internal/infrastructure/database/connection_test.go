package database

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/config"
)

func TestNewConnection_SQLiteFileUsesBusyTimeoutAndWAL(t *testing.T) {
	// Arrange
	cfg := &config.DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "ships.db"),
		BusyTimeout: 5 * time.Second,
	}

	// Act
	db, err := NewConnection(cfg)
	require.NoError(t, err)
	defer Close(db)

	var timeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)

	// Assert
	assert.Equal(t, 5000, timeout)
	assert.Equal(t, "wal", strings.ToLower(mode))
}

func TestSqliteDSN_MemoryDatabaseHasNoParameters(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(&config.DatabaseConfig{Type: "sqlite"}))
	assert.Equal(t, ":memory:", sqliteDSN(&config.DatabaseConfig{Type: "sqlite", Path: ":memory:", BusyTimeout: time.Second}))
}

func TestNewTestConnection_MigratesModels(t *testing.T) {
	db, err := NewTestConnection()
	require.NoError(t, err)
	defer Close(db)

	for _, model := range []string{"players", "spacecraft"} {
		assert.True(t, db.Migrator().HasTable(model), model)
	}
}

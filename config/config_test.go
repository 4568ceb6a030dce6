package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CHEESE_ADDR",
	"CHEESE_STORE",
	"CHEESE_SQLITE_PATH",
	"DATABASE_URL",
	"CHEESE_ROLL_DELAY",
	"CHEESE_BONUS_CARDS",
	"CHEESE_IDENTITY_PATH",
	"CHEESE_STATIC_DIR",
}

// clearEnv unsets every variable Load reads and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		key := key
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, Config{
			Addr:         ":8000",
			Store:        StoreMemory,
			SQLitePath:   "cheese.db",
			RollDelay:    time.Second,
			IdentityPath: ".cheese-identity",
			StaticDir:    "./build",
		}, cfg)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHEESE_ADDR", ":9999")
		t.Setenv("CHEESE_STORE", "sqlite")
		t.Setenv("CHEESE_SQLITE_PATH", "/tmp/games.db")
		t.Setenv("CHEESE_ROLL_DELAY", "250ms")
		t.Setenv("CHEESE_BONUS_CARDS", "true")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, ":9999", cfg.Addr)
		assert.Equal(t, StoreSQLite, cfg.Store)
		assert.Equal(t, "/tmp/games.db", cfg.SQLitePath)
		assert.Equal(t, 250*time.Millisecond, cfg.RollDelay)
		assert.True(t, cfg.BonusCards)
	})

	t.Run("reads a dotenv file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CHEESE_ADDR=:7000\nCHEESE_STATIC_DIR=/srv/www\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":7000", cfg.Addr)
		assert.Equal(t, "/srv/www", cfg.StaticDir)
	})

	t.Run("a missing dotenv file is fine", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHEESE_STORE", "redis")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrUnknownStore)
	})

	t.Run("postgres needs a database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHEESE_STORE", "postgres")

		_, err := Load("")
		assert.Error(t, err)

		t.Setenv("DATABASE_URL", "postgres://localhost/cheese")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/cheese", cfg.DatabaseURL)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, StoreDriverFile, cfg.StoreDriver)
	assert.Equal(t, "data/db.json", cfg.StorePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.ResetStore)
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("STORE_PATH", "/tmp/hw.db")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("RESET_STORE", "true")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StoreDriverBolt, cfg.StoreDriver)
	assert.Equal(t, "/tmp/hw.db", cfg.StorePath)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.ResetStore)
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	// the env file is applied to the process environment; restore it afterwards
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_ADDR", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=4000\nREDIS_ADDR=localhost:6379\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadFile_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}

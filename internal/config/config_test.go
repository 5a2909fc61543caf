package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvironmentDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "leveldb")
	t.Setenv("LEVELDB_PATH", "/tmp/ledger")
	t.Setenv("GATEWAY_PUBLIC_KEY", "0x02aa")

	cfg, err := Load("test", nil)
	require.NoError(t, err)

	assert.Equal(t, BackendLevelDB, cfg.StorageBackend)
	assert.Equal(t, "/tmp/ledger", cfg.LevelDBPath)
	assert.Equal(t, time.Minute, cfg.NTPSyncInterval)
	assert.True(t, cfg.Gateway.Configured())

	key, err := cfg.Gateway.PublicKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0xaa}, key)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "leveldb")

	cfg, err := Load("test", []string{"-storage", "memory", "-addr", ":9000"})
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")

	_, err := Load("test", nil)
	assert.Error(t, err)
}

func TestPostgres_ConnString(t *testing.T) {
	p := Postgres{Host: "db", Port: "5432", User: "u", Password: "p", DB: "ledger"}
	assert.Equal(t, "postgres://u:p@db:5432/ledger?sslmode=disable", p.ConnString())
}

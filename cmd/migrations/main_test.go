package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_ledger.up.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_ledger.down.sql"), []byte("SELECT 2;"), 0o644))

	name, err := migrationFileName(dir, "create_ledger.down")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_ledger.down.sql", name)

	content, err := migrationFileContent(dir, "create_ledger.up")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", string(content))

	_, err = migrationFileName(dir, "missing")
	assert.Error(t, err)
}

func TestMigrationsDirShipsLedgerSchema(t *testing.T) {
	_, err := migrationFileName(filepath.Join("..", "..", migrationsDir), "create_ledger.up")
	assert.NoError(t, err)
}

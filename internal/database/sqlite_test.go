package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'players'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "players", name)

	// second open runs the migration again without error
	db2, err := New(path)
	require.NoError(t, err)
	db2.Close()
}

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := Config{Workspace: "/tmp/ws"}.DSN()
	assert.Equal(t, "file:/tmp/ws/.rosterline/rosterline.db?_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29", dsn)

	dsn = Config{Workspace: "/tmp/ws", BusyTimeout: time.Second, JournalMode: "WAL"}.DSN()
	assert.Contains(t, dsn, "busy_timeout%281000%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
}

func TestOpenPragmas(t *testing.T) {
	ws := t.TempDir()
	conn, err := Open(Config{Workspace: ws, JournalMode: "WAL"})
	require.NoError(t, err)
	defer conn.Close()

	var fk int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
	var mode string
	require.NoError(t, conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, filepath.Join(ws, ".rosterline", "rosterline.db"))
	assert.Equal(t, filepath.Join(".", ".rosterline", "rosterline.db"), Path(""))
}

package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	workspaceDir  = ".rosterline"
	defaultDBName = "rosterline.db"

	defaultBusyTimeout = 5 * time.Second
)

// Config locates the workspace database.
type Config struct {
	Workspace string
	// BusyTimeout bounds how long a writer waits on a locked database. Zero uses 5s.
	BusyTimeout time.Duration
	// JournalMode is passed to PRAGMA journal_mode when set, e.g. "WAL".
	JournalMode string
}

func workspaceRoot(workspace string) string {
	if workspace == "" {
		return "."
	}
	return workspace
}

// EnsureWorkspace creates the .rosterline directory under workspace if missing.
func EnsureWorkspace(workspace string) (string, error) {
	path := filepath.Join(workspaceRoot(workspace), workspaceDir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// DSN returns the modernc sqlite connection string. Foreign keys are always on.
func (c Config) DSN() string {
	timeout := c.BusyTimeout
	if timeout <= 0 {
		timeout = defaultBusyTimeout
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout.Milliseconds()))
	if c.JournalMode != "" {
		q.Add("_pragma", fmt.Sprintf("journal_mode(%s)", c.JournalMode))
	}
	return "file:" + Path(c.Workspace) + "?" + q.Encode()
}

// Open creates the workspace directory and opens its database.
func Open(cfg Config) (*sql.DB, error) {
	if _, err := EnsureWorkspace(cfg.Workspace); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", Path(cfg.Workspace), err)
	}
	return conn, nil
}

// Path returns the db path for the workspace.
func Path(workspace string) string {
	return filepath.Join(workspaceRoot(workspace), workspaceDir, defaultDBName)
}

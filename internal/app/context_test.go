package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterline/internal/config"
	"rosterline/internal/engine"
)

func TestOpenWorkspaceDefaults(t *testing.T) {
	dir := t.TempDir()
	ws, err := OpenWorkspace(context.Background(), dir, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, 1, ws.SchemaVersion)
	assert.Equal(t, 100, ws.Config.Seed.Employees)
	assert.FileExists(t, filepath.Join(dir, ".rosterline", "rosterline.db"))

	res, err := ws.Engine.SeedEmployees(context.Background(), engine.SeedOptions{Count: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalEmployees)
}

func TestOpenWorkspaceReadsConfig(t *testing.T) {
	dir := t.TempDir()
	yml := "seed:\n  employees: 7\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(config.Path(dir), []byte(yml), 0o644))

	var out bytes.Buffer
	ws, err := OpenWorkspace(context.Background(), dir, Options{LogOutput: &out})
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, 7, ws.Config.Seed.Employees)
	assert.Contains(t, out.String(), "schema version 1")
}

func TestOpenWorkspaceRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(config.Path(dir), []byte("roster:\n  vacation_fraction: 2\n"), 0o644))
	_, err := OpenWorkspace(context.Background(), dir, Options{})
	assert.Error(t, err)
}

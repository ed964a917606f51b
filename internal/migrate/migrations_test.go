package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterline/internal/db"
)

func TestMigrateIdempotent(t *testing.T) {
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	v1, err := Migrate(ctx, conn)
	require.NoError(t, err)
	v2, err := Migrate(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)

	migrations, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, migrations[len(migrations)-1].Version, v1)

	for _, table := range []string{"departments", "employees", "roster_periods", "roster_assignments", "events"} {
		var name string
		err := conn.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

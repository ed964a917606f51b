package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterline/internal/db"
	"rosterline/internal/migrate"
	"rosterline/internal/repo"
)

func TestAppend(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	defer conn.Close()
	_, err = migrate.Migrate(ctx, conn)
	require.NoError(t, err)

	w := Writer{Now: func() time.Time { return time.Date(2025, 10, 1, 8, 0, 0, 0, time.FixedZone("x", 3600)) }}
	tx, err := conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, w.Append(ctx, tx, TypeRosterGenerated, "roster_period", "p1", EventPayload{"year": 2025}))
	require.NoError(t, w.Append(ctx, tx, TypeEmployeesSeeded, "employee", "", nil))
	require.NoError(t, tx.Commit())

	evts, err := repo.Repo{DB: conn}.LatestEvents(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, evts, 2)
	assert.Equal(t, TypeEmployeesSeeded, evts[0].Type)
	assert.Equal(t, "", evts[0].EntityID)
	assert.Equal(t, "{}", evts[0].Payload)
	assert.Equal(t, "2025-10-01T07:00:00Z", evts[1].TS)
	assert.JSONEq(t, `{"year":2025}`, evts[1].Payload)
}

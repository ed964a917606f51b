package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterline/internal/db"
	"rosterline/internal/domain"
	"rosterline/internal/migrate"
	"rosterline/internal/repo"
)

func newRepo(t *testing.T) repo.Repo {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = migrate.Migrate(context.Background(), conn)
	require.NoError(t, err)
	return repo.Repo{DB: conn}
}

func TestEmployeesRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	deptID, err := r.EnsureDepartment(ctx, nil, "Operations")
	require.NoError(t, err)
	again, err := r.EnsureDepartment(ctx, nil, "Operations")
	require.NoError(t, err)
	assert.Equal(t, deptID, again)

	for _, id := range []string{"EMP0002", "EMP0001"} {
		require.NoError(t, r.InsertEmployee(ctx, nil, domain.Employee{
			ID: id, Name: "Employee " + id, DepartmentID: deptID, Position: "Staff", CreatedAt: "2025-01-01T00:00:00Z",
		}))
	}
	emps, err := r.ListEmployees(ctx, 0)
	require.NoError(t, err)
	require.Len(t, emps, 2)
	assert.Equal(t, "EMP0001", emps[0].ID)
	assert.Equal(t, "Operations", emps[0].Department)

	limited, err := r.ListEmployees(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = r.GetEmployee(ctx, "EMP9999")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = r.InsertEmployee(ctx, nil, domain.Employee{ID: "EMP0001", Name: "dup", CreatedAt: "2025-01-01T00:00:00Z"})
	require.Error(t, err)
	assert.True(t, repo.IsUniqueViolation(err))

	require.NoError(t, r.DeleteEmployees(ctx, nil))
	n, err := r.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRosterPeriodRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	p := domain.RosterPeriod{
		ID: "p1", Year: 2025, Month: 10, TotalLines: 1, Status: "PUBLISHED",
		Seed: 18446744073709551615, CreatedAt: "2025-09-01T00:00:00Z",
	}
	require.NoError(t, r.InsertRosterPeriod(ctx, nil, p))
	got, err := r.GetRosterPeriod(ctx, nil, 2025, 10)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	dup := p
	dup.ID = "p2"
	err = r.InsertRosterPeriod(ctx, nil, dup)
	assert.True(t, repo.IsUniqueViolation(err))

	tx, err := r.DB.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, r.InsertAssignments(ctx, tx, []domain.Assignment{
		{PeriodID: "p1", EmployeeID: "EMP0002", EmployeeIndex: 1, Date: "2025-10-01", Code: "B"},
		{PeriodID: "p1", EmployeeID: "EMP0001", EmployeeIndex: 0, Date: "2025-10-02", Code: "OFF"},
		{PeriodID: "p1", EmployeeID: "EMP0001", EmployeeIndex: 0, Date: "2025-10-01", Code: "A"},
	}))
	require.NoError(t, tx.Commit())

	rows, err := r.ListAssignments(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-10-01", rows[0].Date)
	assert.Equal(t, "EMP0001", rows[1].EmployeeID)
	assert.Equal(t, "EMP0002", rows[2].EmployeeID)

	require.NoError(t, r.DeleteRosterPeriod(ctx, nil, "p1"))
	rows, err = r.ListAssignments(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.ErrorIs(t, r.DeleteRosterPeriod(ctx, nil, "p1"), repo.ErrNotFound)

	assert.False(t, repo.IsUniqueViolation(repo.ErrNotFound))
}

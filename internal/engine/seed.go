package engine

import (
	"context"
	"fmt"
	"time"

	"rosterline/internal/domain"
	"rosterline/internal/events"
)

// SeedOptions control SeedEmployees.
type SeedOptions struct {
	// Count of employees to create; 0 uses the configured default.
	Count int
	// Reset deletes existing employees and departments first.
	Reset bool
}

// SeedResult reports what SeedEmployees created.
type SeedResult struct {
	Departments    int `json:"departments"`
	Created        int `json:"created"`
	TotalEmployees int `json:"total_employees"`
}

// SeedEmployees creates sample employees EMP0001.. spread round-robin over the
// configured departments. Every tenth employee is a Senior.
func (e Engine) SeedEmployees(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	count := opts.Count
	if count == 0 {
		count = e.Config.Seed.Employees
	}
	if count < 1 || count > 9999 {
		return SeedResult{}, fmt.Errorf("%w: count must be between 1 and 9999", ErrInvalidInput)
	}
	departments := e.Config.Seed.Departments
	if len(departments) == 0 {
		return SeedResult{}, fmt.Errorf("%w: no seed departments configured", ErrInvalidInput)
	}

	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, err
	}
	defer tx.Rollback()

	if opts.Reset {
		if err := e.Repo.DeleteEmployees(ctx, tx); err != nil {
			return SeedResult{}, fmt.Errorf("reset employees: %w", err)
		}
	} else {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&existing); err != nil {
			return SeedResult{}, err
		}
		if existing > 0 {
			return SeedResult{}, fmt.Errorf("%w: %d employees stored; seed with reset to replace them", ErrEmployeesExist, existing)
		}
	}

	ids := make([]int64, len(departments))
	for i, name := range departments {
		id, err := e.Repo.EnsureDepartment(ctx, tx, name)
		if err != nil {
			return SeedResult{}, err
		}
		ids[i] = id
	}
	now := e.now().UTC().Format(time.RFC3339)
	for i := 1; i <= count; i++ {
		position := "Staff"
		if i%10 == 0 {
			position = "Senior"
		}
		emp := domain.Employee{
			ID:           fmt.Sprintf("EMP%04d", i),
			Name:         fmt.Sprintf("Employee %d", i),
			DepartmentID: ids[i%len(ids)],
			Position:     position,
			CreatedAt:    now,
		}
		if err := e.Repo.InsertEmployee(ctx, tx, emp); err != nil {
			return SeedResult{}, fmt.Errorf("insert employee %s: %w", emp.ID, err)
		}
	}
	if err := e.Events.Append(ctx, tx, events.TypeEmployeesSeeded, entityEmployee, "", events.EventPayload{
		"count": count,
		"reset": opts.Reset,
	}); err != nil {
		return SeedResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return SeedResult{}, err
	}
	total, err := e.Repo.CountEmployees(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	e.logs().Infof("seeded %d employees across %d departments", count, len(departments))
	return SeedResult{Departments: len(departments), Created: count, TotalEmployees: total}, nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"rosterline/internal/domain"
)

type Repo struct {
	DB *sql.DB
}

var ErrNotFound = errors.New("not found")

// IsUniqueViolation reports whether err is a SQLite UNIQUE or PRIMARY KEY conflict.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns tx when set, otherwise the pool.
func (r Repo) conn(tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.DB
}

// EnsureDepartment returns the id of the named department, creating it if needed.
func (r Repo) EnsureDepartment(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("department name required")
	}
	q := r.conn(tx)
	if _, err := q.ExecContext(ctx, `INSERT INTO departments(name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return 0, fmt.Errorf("insert department: %w", err)
	}
	var id int64
	if err := q.QueryRowContext(ctx, `SELECT id FROM departments WHERE name=?`, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r Repo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id,name FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r Repo) InsertEmployee(ctx context.Context, tx *sql.Tx, e domain.Employee) error {
	if e.ID == "" {
		return errors.New("employee id required")
	}
	var dept any
	if e.DepartmentID != 0 {
		dept = e.DepartmentID
	}
	_, err := r.conn(tx).ExecContext(ctx, `INSERT INTO employees(id,name,department_id,position,created_at) VALUES (?,?,?,?,?)`,
		e.ID, e.Name, dept, nullable(e.Position), e.CreatedAt)
	return err
}

const employeeSelect = `SELECT e.id,e.name,COALESCE(e.department_id,0),COALESCE(d.name,''),COALESCE(e.position,''),e.created_at
FROM employees e LEFT JOIN departments d ON d.id=e.department_id`

// ListEmployees returns employees ordered by id. limit <= 0 returns all.
func (r Repo) ListEmployees(ctx context.Context, limit int) ([]domain.Employee, error) {
	query := employeeSelect + ` ORDER BY e.id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.DepartmentID, &e.Department, &e.Position, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r Repo) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	var e domain.Employee
	err := r.DB.QueryRowContext(ctx, employeeSelect+` WHERE e.id=?`, id).
		Scan(&e.ID, &e.Name, &e.DepartmentID, &e.Department, &e.Position, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	return e, err
}

func (r Repo) CountEmployees(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

// DeleteEmployees removes every employee and department.
func (r Repo) DeleteEmployees(ctx context.Context, tx *sql.Tx) error {
	q := r.conn(tx)
	if _, err := q.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM departments`)
	return err
}

// LatestEvents returns up to n events, newest first, optionally filtered by type.
func (r Repo) LatestEvents(ctx context.Context, n int, evtType string) ([]domain.Event, error) {
	if n <= 0 {
		n = 20
	}
	query := `SELECT id,ts,type,entity_kind,COALESCE(entity_id,''),payload_json FROM events`
	var args []any
	if evtType != "" {
		query += ` WHERE type=?`
		args = append(args, evtType)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, n)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.EntityKind, &e.EntityID, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

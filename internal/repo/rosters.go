package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"rosterline/internal/domain"
)

const periodSelect = `SELECT id,year,month,total_lines,status,seed,created_at FROM roster_periods`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPeriod(row rowScanner) (domain.RosterPeriod, error) {
	var p domain.RosterPeriod
	var seed string
	err := row.Scan(&p.ID, &p.Year, &p.Month, &p.TotalLines, &p.Status, &seed, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	p.Seed, err = strconv.ParseUint(seed, 10, 64)
	return p, err
}

func (r Repo) InsertRosterPeriod(ctx context.Context, tx *sql.Tx, p domain.RosterPeriod) error {
	_, err := r.conn(tx).ExecContext(ctx, `INSERT INTO roster_periods(id,year,month,total_lines,status,seed,created_at) VALUES (?,?,?,?,?,?,?)`,
		p.ID, p.Year, p.Month, p.TotalLines, p.Status, strconv.FormatUint(p.Seed, 10), p.CreatedAt)
	return err
}

// GetRosterPeriod finds the roster for a month. tx may be nil.
func (r Repo) GetRosterPeriod(ctx context.Context, tx *sql.Tx, year, month int) (domain.RosterPeriod, error) {
	return scanPeriod(r.conn(tx).QueryRowContext(ctx, periodSelect+` WHERE year=? AND month=?`, year, month))
}

// ListRosterPeriods returns rosters newest year first, then newest created.
func (r Repo) ListRosterPeriods(ctx context.Context) ([]domain.RosterPeriod, error) {
	rows, err := r.DB.QueryContext(ctx, periodSelect+` ORDER BY year DESC, created_at DESC, month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.RosterPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// DeleteRosterPeriod removes a roster by id and, by cascade, its assignments.
func (r Repo) DeleteRosterPeriod(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := r.conn(tx).ExecContext(ctx, `DELETE FROM roster_periods WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertAssignments stores assignment rows inside tx.
func (r Repo) InsertAssignments(ctx context.Context, tx *sql.Tx, rows []domain.Assignment) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO roster_assignments(period_id,employee_id,employee_index,date,code) VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, a := range rows {
		if _, err := stmt.ExecContext(ctx, a.PeriodID, a.EmployeeID, a.EmployeeIndex, a.Date, a.Code); err != nil {
			return err
		}
	}
	return nil
}

// ListAssignments returns a roster's rows by employee position then date.
func (r Repo) ListAssignments(ctx context.Context, periodID string) ([]domain.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT period_id,employee_id,employee_index,date,code FROM roster_assignments
WHERE period_id=? ORDER BY employee_index, date`, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.PeriodID, &a.EmployeeID, &a.EmployeeIndex, &a.Date, &a.Code); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

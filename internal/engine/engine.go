package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"rosterline/internal/config"
	"rosterline/internal/domain"
	"rosterline/internal/events"
	"rosterline/internal/logger"
	"rosterline/internal/metrics"
	"rosterline/internal/repo"
	"rosterline/internal/roster"
)

const (
	StatusPublished = "PUBLISHED"

	entityRosterPeriod = "roster_period"
	entityEmployee     = "employee"
)

var (
	// ErrRosterExists is returned when a roster for the month is already stored.
	ErrRosterExists = errors.New("roster already exists")
	// ErrEmployeesExist is returned when seeding into a non-empty employee table without reset.
	ErrEmployeesExist = errors.New("employees already exist")
	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")
)

type Engine struct {
	DB      *sql.DB
	Repo    repo.Repo
	Events  events.Writer
	Config  *config.Config
	Log     logger.Logger
	Metrics metrics.Recorder
	Now     func() time.Time
	// NewSeed draws the seed for generations that do not supply one.
	NewSeed func() uint64
}

func New(db *sql.DB, cfg *config.Config) Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return Engine{
		DB:      db,
		Repo:    repo.Repo{DB: db},
		Events:  events.Writer{},
		Config:  cfg,
		Log:     logger.NopLogger{},
		Metrics: metrics.Nop{},
		Now:     time.Now,
		NewSeed: rand.Uint64,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) logs() logger.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logger.NopLogger{}
}

func (e Engine) recorder() metrics.Recorder {
	if e.Metrics != nil {
		return e.Metrics
	}
	return metrics.Nop{}
}

func (e Engine) policy() roster.Policy {
	if e.Config == nil {
		return roster.DefaultPolicy()
	}
	return e.Config.Policy()
}

// GenerateOptions are parameters for generating a month's roster.
type GenerateOptions struct {
	Year  int
	Month int
	// TotalLines limits how many employees take part; 0 uses everyone.
	TotalLines int
	// Seed makes vacation selection reproducible. When nil a seed is drawn and stored.
	Seed *uint64
}

// Roster is a generated or stored roster with the employees it covers, in generation order.
type Roster struct {
	Period    domain.RosterPeriod `json:"roster_period"`
	Employees []roster.Employee   `json:"employees"`
	*roster.Result
}

// GenerateRoster computes and stores the roster for a month.
func (e Engine) GenerateRoster(ctx context.Context, opts GenerateOptions) (res Roster, err error) {
	start := e.now()
	defer func() {
		if err != nil {
			e.recorder().RosterFailed(failureReason(err))
		}
	}()
	if _, err := roster.MonthDates(opts.Year, opts.Month); err != nil {
		return Roster{}, err
	}
	if opts.TotalLines < 0 {
		return Roster{}, fmt.Errorf("%w: total_lines must not be negative", ErrInvalidInput)
	}
	if _, err := e.Repo.GetRosterPeriod(ctx, nil, opts.Year, opts.Month); err == nil {
		return Roster{}, fmt.Errorf("%w: a roster for %s %d already exists", ErrRosterExists, roster.MonthName(opts.Month), opts.Year)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return Roster{}, err
	}
	records, err := e.Repo.ListEmployees(ctx, opts.TotalLines)
	if err != nil {
		return Roster{}, err
	}
	if len(records) == 0 {
		return Roster{}, fmt.Errorf("%w: add employees first", roster.ErrEmptyEmployeeList)
	}
	employees := toRosterEmployees(records)

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else if e.NewSeed != nil {
		seed = e.NewSeed()
	} else {
		seed = rand.Uint64()
	}
	e.logs().Infof("generating roster for %d-%02d with %d employees", opts.Year, opts.Month, len(employees))
	result, err := roster.Generate(employees, opts.Year, opts.Month, roster.WithSeed(seed), roster.WithPolicy(e.policy()))
	if err != nil {
		return Roster{}, err
	}

	period := domain.RosterPeriod{
		ID:         uuid.NewString(),
		Year:       opts.Year,
		Month:      opts.Month,
		TotalLines: len(employees),
		Status:     StatusPublished,
		Seed:       seed,
		CreatedAt:  e.now().UTC().Format(time.RFC3339),
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return Roster{}, err
	}
	defer tx.Rollback()

	if _, err := e.Repo.GetRosterPeriod(ctx, tx, opts.Year, opts.Month); err == nil {
		return Roster{}, fmt.Errorf("%w: a roster for %s %d already exists", ErrRosterExists, roster.MonthName(opts.Month), opts.Year)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return Roster{}, err
	}
	if err := e.Repo.InsertRosterPeriod(ctx, tx, period); err != nil {
		if repo.IsUniqueViolation(err) {
			return Roster{}, fmt.Errorf("%w: a roster for %s %d already exists", ErrRosterExists, roster.MonthName(opts.Month), opts.Year)
		}
		return Roster{}, fmt.Errorf("insert roster period: %w", err)
	}
	if err := e.Repo.InsertAssignments(ctx, tx, assignmentRows(period.ID, employees, result)); err != nil {
		return Roster{}, fmt.Errorf("insert assignments: %w", err)
	}
	standby := standbyTotal(result.Summary)
	if err := e.Events.Append(ctx, tx, events.TypeRosterGenerated, entityRosterPeriod, period.ID, events.EventPayload{
		"year":        period.Year,
		"month":       period.Month,
		"total_lines": period.TotalLines,
		"vacation":    len(result.Vacation),
		"standby":     standby,
		"seed":        fmt.Sprint(seed),
	}); err != nil {
		return Roster{}, err
	}
	if err := tx.Commit(); err != nil {
		return Roster{}, err
	}

	e.logs().Infow("roster generated", map[string]any{
		"period_id": period.ID,
		"total":     len(employees),
		"vacation":  len(result.Vacation),
		"available": len(employees) - len(result.Vacation),
		"standby":   standby,
	})
	e.recorder().RosterGenerated(len(employees), len(result.Vacation), standby, e.now().Sub(start))
	return Roster{Period: period, Employees: employees, Result: result}, nil
}

// GetRoster rebuilds a stored roster. The summary is recomputed from the stored cells.
func (e Engine) GetRoster(ctx context.Context, year, month int) (Roster, error) {
	dates, err := roster.MonthDates(year, month)
	if err != nil {
		return Roster{}, err
	}
	period, err := e.Repo.GetRosterPeriod(ctx, nil, year, month)
	if err != nil {
		return Roster{}, err
	}
	rows, err := e.Repo.ListAssignments(ctx, period.ID)
	if err != nil {
		return Roster{}, err
	}
	current, err := e.Repo.ListEmployees(ctx, 0)
	if err != nil {
		return Roster{}, err
	}
	known := make(map[string]domain.Employee, len(current))
	for _, c := range current {
		known[c.ID] = c
	}

	schedule := roster.Schedule{}
	var employees []roster.Employee
	for _, a := range rows {
		days, ok := schedule[a.EmployeeID]
		if !ok {
			days = make(map[string]roster.Code, len(dates))
			schedule[a.EmployeeID] = days
			emp := roster.Employee{ID: a.EmployeeID}
			if rec, ok := known[a.EmployeeID]; ok {
				emp = toRosterEmployees([]domain.Employee{rec})[0]
			}
			employees = append(employees, emp)
		}
		days[a.Date] = roster.Code(a.Code)
	}
	var vacation []string
	for _, emp := range employees {
		if onVacation(schedule[emp.ID], dates) {
			vacation = append(vacation, emp.ID)
		}
	}
	return Roster{
		Period:    period,
		Employees: employees,
		Result: &roster.Result{
			Schedule: schedule,
			Summary:  roster.Summarize(schedule, dates, employees),
			Dates:    dates,
			Vacation: vacation,
		},
	}, nil
}

func (e Engine) ListRosters(ctx context.Context) ([]domain.RosterPeriod, error) {
	return e.Repo.ListRosterPeriods(ctx)
}

// DeleteRoster removes a stored roster so the month can be generated again.
func (e Engine) DeleteRoster(ctx context.Context, year, month int) error {
	period, err := e.Repo.GetRosterPeriod(ctx, nil, year, month)
	if err != nil {
		return err
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := e.Repo.DeleteRosterPeriod(ctx, tx, period.ID); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.TypeRosterDeleted, entityRosterPeriod, period.ID, events.EventPayload{
		"year":  year,
		"month": month,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	e.logs().Infof("deleted roster %s for %d-%02d", period.ID, year, month)
	return nil
}

// BiddingLines lays out bidding lines for a month. totalLines <= 0 uses the employee count.
func (e Engine) BiddingLines(ctx context.Context, year, month, totalLines int) ([]roster.Line, error) {
	if totalLines <= 0 {
		n, err := e.Repo.CountEmployees(ctx)
		if err != nil {
			return nil, err
		}
		totalLines = n
	}
	return roster.GenerateLines(totalLines, year, month)
}

func toRosterEmployees(records []domain.Employee) []roster.Employee {
	out := make([]roster.Employee, 0, len(records))
	for _, r := range records {
		dept := r.Department
		if dept == "" {
			dept = roster.DefaultDepartment
		}
		out = append(out, roster.Employee{ID: r.ID, Name: r.Name, Department: dept})
	}
	return out
}

func assignmentRows(periodID string, employees []roster.Employee, res *roster.Result) []domain.Assignment {
	rows := make([]domain.Assignment, 0, len(employees)*len(res.Dates))
	for idx, emp := range employees {
		for _, d := range res.Dates {
			key := roster.DateKey(d)
			rows = append(rows, domain.Assignment{
				PeriodID:      periodID,
				EmployeeID:    emp.ID,
				EmployeeIndex: idx,
				Date:          key,
				Code:          string(res.Schedule[emp.ID][key]),
			})
		}
	}
	return rows
}

func onVacation(days map[string]roster.Code, dates []time.Time) bool {
	if len(dates) == 0 {
		return false
	}
	for _, d := range dates {
		if days[roster.DateKey(d)] != roster.CodeVacation {
			return false
		}
	}
	return true
}

func standbyTotal(s roster.Summary) int {
	total := 0
	for _, st := range s.EmployeeStats {
		total += st.Standby
	}
	return total
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, roster.ErrInvalidMonth):
		return "invalid_month"
	case errors.Is(err, roster.ErrEmptyEmployeeList):
		return "no_employees"
	case errors.Is(err, ErrRosterExists):
		return "exists"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, roster.ErrInvalidPolicy), errors.Is(err, roster.ErrDuplicateEmployee):
		return "invalid_input"
	default:
		return "internal"
	}
}

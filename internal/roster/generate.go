// Package roster computes monthly shift schedules for a staff roster.
//
// Generation is a pure in-memory pipeline: the month is expanded into dates,
// a random share of employees is put on vacation, everyone else follows a
// rotating shift pattern chosen by department, some shift days are turned
// into standby duty and the result is summarized. Nothing is shared between
// calls, so concurrent generations need no coordination.
package roster

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Employee is the read-only input record for one roster member.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Schedule maps employee ID to date key (DateLayout) to assignment code.
type Schedule map[string]map[string]Code

// Policy holds the generation constants for a deployment.
type Policy struct {
	VacationFraction float64
	StandbyPerShift  int
	StandbyCap       int
	Departments      map[string]PatternKind
}

// DefaultPolicy returns 10% vacation, 12 standby candidates per shift, at most
// 3 standby days per employee and Station Staff/Supervisors on two shifts.
func DefaultPolicy() Policy {
	return Policy{
		VacationFraction: DefaultVacationFraction,
		StandbyPerShift:  DefaultStandbyPerShift,
		StandbyCap:       DefaultStandbyCap,
		Departments:      DefaultDepartmentPatterns(),
	}
}

// Validate checks the policy ranges.
func (p Policy) Validate() error {
	if p.VacationFraction < 0 || p.VacationFraction >= 1 {
		return fmt.Errorf("%w: vacation fraction %v must be in [0,1)", ErrInvalidPolicy, p.VacationFraction)
	}
	if p.StandbyPerShift < 0 {
		return fmt.Errorf("%w: standby per shift %d is negative", ErrInvalidPolicy, p.StandbyPerShift)
	}
	if p.StandbyCap < 0 {
		return fmt.Errorf("%w: standby cap %d is negative", ErrInvalidPolicy, p.StandbyCap)
	}
	return nil
}

// PatternFor returns the rotation for a department category.
func (p Policy) PatternFor(department string) PatternKind {
	if department == "" {
		department = DefaultDepartment
	}
	if kind, ok := p.Departments[department]; ok {
		return kind
	}
	return ThreeShiftPattern
}

// Result is the output of one generation.
type Result struct {
	Schedule Schedule    `json:"schedule"`
	Summary  Summary     `json:"summary"`
	Dates    []time.Time `json:"dates"`
	Vacation []string    `json:"vacation"`
}

type options struct {
	rng    *rand.Rand
	policy Policy
}

// Option configures Generate.
type Option func(*options)

// WithRand sets the random source used for vacation selection.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed seeds a PCG source for vacation selection, making Generate reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = NewRand(seed)
	}
}

// WithPolicy overrides DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// NewRand returns the generator WithSeed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds the schedule for employees in the given month. Employee
// order matters: an employee's position drives its pattern phase.
func Generate(employees []Employee, year, month int, opts ...Option) (*Result, error) {
	o := options{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}
	dates, err := MonthDates(year, month)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ErrEmptyEmployeeList
	}
	seen := make(map[string]bool, len(employees))
	for _, emp := range employees {
		if seen[emp.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEmployee, emp.ID)
		}
		seen[emp.ID] = true
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	onVacation := make(map[int]bool)
	for _, idx := range SelectVacation(len(employees), o.policy.VacationFraction, o.rng) {
		onVacation[idx] = true
	}

	schedule := make(Schedule, len(employees))
	vacation := make([]string, 0, len(onVacation))
	available := make([]Employee, 0, len(employees)-len(onVacation))
	for idx, emp := range employees {
		days := make(map[string]Code, len(dates))
		if onVacation[idx] {
			for _, d := range dates {
				days[DateKey(d)] = CodeVacation
			}
			vacation = append(vacation, emp.ID)
		} else {
			pattern := ShiftPattern(idx, o.policy.PatternFor(emp.Department), len(dates))
			for i, d := range dates {
				days[DateKey(d)] = pattern[i]
			}
			available = append(available, emp)
		}
		schedule[emp.ID] = days
	}

	AllocateStandby(schedule, dates, available, o.policy.StandbyPerShift, o.policy.StandbyCap)

	return &Result{
		Schedule: schedule,
		Summary:  Summarize(schedule, dates, employees),
		Dates:    dates,
		Vacation: vacation,
	}, nil
}

package server

import (
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"rosterline/internal/domain"
	"rosterline/internal/engine"
	"rosterline/internal/roster"
)

// Request payloads

// MonthValue accepts a month as a number (10), a numeric string ("10") or an
// exact English month name ("October").
type MonthValue struct {
	Number int
	Name   string
}

func (m *MonthValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = MonthValue{Number: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("month must be a number or a month name")
	}
	*m = MonthValue{Name: s}
	return nil
}

func (m MonthValue) MarshalJSON() ([]byte, error) {
	if m.Name != "" {
		return json.Marshal(m.Name)
	}
	return json.Marshal(m.Number)
}

// Schema documents the number-or-name union.
func (MonthValue) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Month as 1-12 or an English month name",
		OneOf: []*huma.Schema{
			{Type: huma.TypeInteger},
			{Type: huma.TypeString},
		},
	}
}

// Resolve returns the month number. Range checks happen in the engine.
func (m MonthValue) Resolve() (int, error) {
	if m.Name != "" {
		return roster.ResolveMonth(m.Name)
	}
	return m.Number, nil
}

type GenerateRosterRequest struct {
	Year       int        `json:"year" minimum:"1" example:"2025"`
	Month      MonthValue `json:"month"`
	TotalLines int        `json:"total_lines,omitempty" minimum:"0" doc:"Employees to include; 0 uses everyone"`
	Seed       *uint64    `json:"seed,omitempty" doc:"Seed for a reproducible vacation draw"`
}

type SeedEmployeesRequest struct {
	Count int  `json:"count,omitempty" minimum:"0" maximum:"9999" doc:"Employees to create; 0 uses the configured default"`
	Reset bool `json:"reset,omitempty" doc:"Replace existing employees and departments"`
}

// Response payloads

type RosterResponse struct {
	Success   bool                `json:"success"`
	Period    domain.RosterPeriod `json:"roster_period"`
	Employees []RosterEmployee    `json:"employees"`
	Schedule  roster.Schedule     `json:"schedule"`
	Summary   roster.Summary      `json:"summary"`
	Dates     []string            `json:"dates"`
	Vacation  []string            `json:"vacation"`
	Message   string              `json:"message,omitempty"`
}

// RosterEmployee is an employee as covered by a roster, in generation order.
type RosterEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type RosterListResponse struct {
	Success bool                  `json:"success"`
	Rosters []domain.RosterPeriod `json:"rosters"`
	Count   int                   `json:"count"`
}

type EmployeeListResponse struct {
	Employees []domain.Employee `json:"employees"`
	Count     int               `json:"count"`
}

type SeedEmployeesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	engine.SeedResult
}

type LinesResponse struct {
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	TotalLines int            `json:"total_lines"`
	Lines      []LineResponse `json:"lines"`
}

type LineResponse struct {
	LineNumber int    `json:"lineNumber"`
	Date       string `json:"date" format:"date"`
	Shift      string `json:"shift"`
	Department string `json:"department"`
}

type ShiftsResponse struct {
	Shifts []roster.Shift `json:"shifts"`
	Codes  []roster.Code  `json:"codes"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func rosterResponse(r engine.Roster, message string) RosterResponse {
	dates := make([]string, 0, len(r.Dates))
	for _, d := range r.Dates {
		dates = append(dates, roster.DateKey(d))
	}
	vacation := r.Vacation
	if vacation == nil {
		vacation = []string{}
	}
	employees := make([]RosterEmployee, 0, len(r.Employees))
	for _, emp := range r.Employees {
		employees = append(employees, RosterEmployee{ID: emp.ID, Name: emp.Name, Department: emp.Department})
	}
	return RosterResponse{
		Success:   true,
		Period:    r.Period,
		Employees: employees,
		Schedule:  r.Schedule,
		Summary:   r.Summary,
		Dates:     dates,
		Vacation:  vacation,
		Message:   message,
	}
}

func mapLines(lines []roster.Line) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{
			LineNumber: l.LineNumber,
			Date:       roster.DateKey(l.Date),
			Shift:      string(l.Shift),
			Department: l.Department,
		})
	}
	return out
}

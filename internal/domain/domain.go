package domain

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID int64  `json:"department_id"`
	Department   string `json:"department"`
	Position     string `json:"position,omitempty"`
	CreatedAt    string `json:"created_at" format:"date-time"`
}

type RosterPeriod struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	TotalLines int    `json:"total_lines"`
	Status     string `json:"status" enum:"DRAFT,PUBLISHED"`
	Seed       uint64 `json:"seed"`
	CreatedAt  string `json:"created_at" format:"date-time"`
}

type Assignment struct {
	PeriodID      string `json:"period_id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeIndex int    `json:"employee_index"`
	Date          string `json:"date" format:"date"`
	Code          string `json:"code"`
}

type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts" format:"date-time"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id,omitempty"`
	Payload    string `json:"payload_json"`
}

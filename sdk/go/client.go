package rosterlinesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a minimal Rosterline HTTP API client.
type Client struct {
	BaseURL    string
	BasePath   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		BasePath: "/v0",
		Timeout:  30 * time.Second,
	}
}

// RosterPeriod is a stored roster's metadata.
type RosterPeriod struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	TotalLines int    `json:"total_lines"`
	Status     string `json:"status"`
	Seed       uint64 `json:"seed"`
	CreatedAt  string `json:"created_at"`
}

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position,omitempty"`
}

type DailyCoverage struct {
	Date     string `json:"date"`
	A        int    `json:"A"`
	B        int    `json:"B"`
	C        int    `json:"C"`
	Off      int    `json:"OFF"`
	Vacation int    `json:"VACATION"`
	Standby  int    `json:"standby"`
}

type EmployeeStats struct {
	A        int `json:"A"`
	B        int `json:"B"`
	C        int `json:"C"`
	Off      int `json:"OFF"`
	Vacation int `json:"VACATION"`
	Standby  int `json:"STANDBY"`
}

type Summary struct {
	TotalEmployees int                      `json:"totalEmployees"`
	TotalDays      int                      `json:"totalDays"`
	DailyCoverage  []DailyCoverage          `json:"dailyCoverage"`
	EmployeeStats  map[string]EmployeeStats `json:"employeeStats"`
}

// Roster is a generated or stored roster. Schedule maps employee id to date to code.
type Roster struct {
	Success   bool                         `json:"success"`
	Period    RosterPeriod                 `json:"roster_period"`
	Employees []Employee                   `json:"employees"`
	Schedule  map[string]map[string]string `json:"schedule"`
	Summary   Summary                      `json:"summary"`
	Dates     []string                     `json:"dates"`
	Vacation  []string                     `json:"vacation"`
	Message   string                       `json:"message,omitempty"`
}

// Line is one working day of a bidding line.
type Line struct {
	LineNumber int    `json:"lineNumber"`
	Date       string `json:"date"`
	Shift      string `json:"shift"`
	Department string `json:"department"`
}

type SeedResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Departments    int    `json:"departments"`
	Created        int    `json:"created"`
	TotalEmployees int    `json:"total_employees"`
}

// GenerateRequest asks for a roster. Month may be an int or a month name.
type GenerateRequest struct {
	Year       int     `json:"year"`
	Month      any     `json:"month"`
	TotalLines int     `json:"total_lines,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// IsConflict reports whether err is a 409 from the API.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// SeedEmployees creates sample employees. reset replaces existing ones.
func (c *Client) SeedEmployees(ctx context.Context, count int, reset bool) (SeedResult, error) {
	var resp SeedResult
	err := c.do(ctx, http.MethodPost, "employees/seed", map[string]any{"count": count, "reset": reset}, &resp)
	return resp, err
}

// ListEmployees lists up to limit employees; 0 lists all.
func (c *Client) ListEmployees(ctx context.Context, limit int) ([]Employee, error) {
	var resp struct {
		Employees []Employee `json:"employees"`
	}
	endpoint := "employees"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.Employees, err
}

// GenerateRoster generates and stores a month's roster.
func (c *Client) GenerateRoster(ctx context.Context, req GenerateRequest) (Roster, error) {
	var resp Roster
	err := c.do(ctx, http.MethodPost, "roster/generate", req, &resp)
	return resp, err
}

// ListRosters returns stored rosters, newest first.
func (c *Client) ListRosters(ctx context.Context) ([]RosterPeriod, error) {
	var resp struct {
		Rosters []RosterPeriod `json:"rosters"`
	}
	err := c.do(ctx, http.MethodGet, "roster", nil, &resp)
	return resp.Rosters, err
}

// GetRoster fetches a stored roster.
func (c *Client) GetRoster(ctx context.Context, year, month int) (Roster, error) {
	var resp Roster
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("roster/%d/%d", year, month), nil, &resp)
	return resp, err
}

// DeleteRoster removes a stored roster.
func (c *Client) DeleteRoster(ctx context.Context, year, month int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("roster/%d/%d", year, month), nil, nil)
}

// Lines fetches bidding lines; totalLines 0 uses the employee count.
func (c *Client) Lines(ctx context.Context, year, month, totalLines int) ([]Line, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	if totalLines > 0 {
		q.Set("total_lines", strconv.Itoa(totalLines))
	}
	var resp struct {
		Lines []Line `json:"lines"`
	}
	err := c.do(ctx, http.MethodGet, "roster/lines?"+q.Encode(), nil, &resp)
	return resp.Lines, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var env struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if p := strings.Trim(c.BasePath, "/"); p != "" {
		base += "/" + p
	}
	return base
}

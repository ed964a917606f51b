package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rosterline/internal/domain"
	"rosterline/internal/engine"
	"rosterline/internal/logger"
	"rosterline/internal/repo"
	"rosterline/internal/roster"
)

// Config for the HTTP API handler.
type Config struct {
	Engine   engine.Engine
	BasePath string
	Log      logger.Logger
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"conflict"`
	Message string         `json:"message" example:"roster already exists"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the Rosterline API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	log := cfg.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(log))
	hcfg := huma.DefaultConfig("Rosterline API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	h := handlers{engine: cfg.Engine, log: log}
	registerDocs(router, basePath)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics)
	}
	registerHealth(group)
	registerShifts(group)
	h.registerEmployees(group)
	h.registerRosters(group)
	registerOpenAPI(router, api, basePath)

	return router, nil
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("http request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			})
		})
	}
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

type handlers struct {
	engine engine.Engine
	log    logger.Logger
}

func (h handlers) handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return newAPIError(http.StatusNotFound, "not_found", msg, nil)
	case errors.Is(err, engine.ErrRosterExists), errors.Is(err, engine.ErrEmployeesExist):
		return newAPIError(http.StatusConflict, "conflict", msg, nil)
	case errors.Is(err, roster.ErrEmptyEmployeeList):
		return newAPIError(http.StatusBadRequest, "no_employees", msg, nil)
	case errors.Is(err, roster.ErrInvalidMonth),
		errors.Is(err, roster.ErrInvalidLineCount),
		errors.Is(err, roster.ErrInvalidPolicy),
		errors.Is(err, roster.ErrDuplicateEmployee),
		errors.Is(err, engine.ErrInvalidInput):
		return newAPIError(http.StatusBadRequest, "bad_request", msg, nil)
	default:
		h.log.Errorf("request failed: %v", err)
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": msg})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	var (
		once sync.Once
		spec []byte
	)
	specPath := path.Join(basePath, "openapi.json")
	r.Get(specPath, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			oas := api.OpenAPI()
			ensureDefaultErrorResponses(oas)
			spec, _ = json.Marshal(oas)
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

func ensureDefaultErrorResponses(oas *huma.OpenAPI) {
	if oas == nil || oas.Paths == nil || oas.Components == nil || oas.Components.Schemas == nil {
		return
	}
	errSchema := oas.Components.Schemas.Schema(reflect.TypeOf(apiError{}), true, "ApiError")
	for _, item := range oas.Paths {
		for _, op := range []*huma.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Options, item.Head, item.Patch, item.Trace,
		} {
			if op == nil {
				continue
			}
			if op.Responses == nil {
				op.Responses = map[string]*huma.Response{}
			}
			op.Responses["default"] = &huma.Response{
				Description: "Error",
				Content: map[string]*huma.MediaType{
					"application/json": {Schema: errSchema},
				},
			}
		}
	}
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", path.Join(basePath, "openapi.json"))
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Rosterline API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerShifts(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-shifts",
		Method:      http.MethodGet,
		Path:        "/shifts",
		Summary:     "Shift catalogue and assignment codes",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body ShiftsResponse `json:"body"`
	}, error) {
		return &struct {
			Body ShiftsResponse `json:"body"`
		}{Body: ShiftsResponse{Shifts: roster.Shifts, Codes: roster.Codes}}, nil
	})
}

func (h handlers) registerEmployees(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-employees",
		Method:      http.MethodGet,
		Path:        "/employees",
		Summary:     "List employees ordered by id",
	}, func(ctx context.Context, input *struct {
		Limit int `query:"limit" minimum:"0" doc:"0 returns all"`
	}) (*struct {
		Body EmployeeListResponse `json:"body"`
	}, error) {
		items, err := h.engine.Repo.ListEmployees(ctx, input.Limit)
		if err != nil {
			return nil, h.handleError(err)
		}
		if items == nil {
			items = []domain.Employee{}
		}
		resp := EmployeeListResponse{Employees: items, Count: len(items)}
		return &struct {
			Body EmployeeListResponse `json:"body"`
		}{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "seed-employees",
		Method:      http.MethodPost,
		Path:        "/employees/seed",
		Summary:     "Seed sample departments and employees",
		Errors:      []int{http.StatusBadRequest, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body SeedEmployeesRequest
	}) (*struct {
		Body SeedEmployeesResponse `json:"body"`
	}, error) {
		res, err := h.engine.SeedEmployees(ctx, engine.SeedOptions{Count: input.Body.Count, Reset: input.Body.Reset})
		if err != nil {
			return nil, h.handleError(err)
		}
		return &struct {
			Body SeedEmployeesResponse `json:"body"`
		}{Body: SeedEmployeesResponse{
			Success:    true,
			Message:    fmt.Sprintf("Successfully seeded database with %d employees", res.TotalEmployees),
			SeedResult: res,
		}}, nil
	})
}

func (h handlers) registerRosters(api huma.API) {
	type rosterPath struct {
		Year  int    `path:"year" minimum:"1"`
		Month string `path:"month" doc:"1-12 or a month name"`
	}

	huma.Register(api, huma.Operation{
		OperationID: "generate-roster",
		Method:      http.MethodPost,
		Path:        "/roster/generate",
		Summary:     "Generate and store a month's roster",
		Errors:      []int{http.StatusBadRequest, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body GenerateRosterRequest
	}) (*struct {
		Body RosterResponse `json:"body"`
	}, error) {
		month, err := input.Body.Month.Resolve()
		if err != nil {
			return nil, h.handleError(err)
		}
		res, err := h.engine.GenerateRoster(ctx, engine.GenerateOptions{
			Year:       input.Body.Year,
			Month:      month,
			TotalLines: input.Body.TotalLines,
			Seed:       input.Body.Seed,
		})
		if err != nil {
			return nil, h.handleError(err)
		}
		msg := fmt.Sprintf("Roster generated successfully for %d employees", len(res.Employees))
		return &struct {
			Body RosterResponse `json:"body"`
		}{Body: rosterResponse(res, msg)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-rosters",
		Method:      http.MethodGet,
		Path:        "/roster",
		Summary:     "List stored rosters, newest first",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body RosterListResponse `json:"body"`
	}, error) {
		items, err := h.engine.ListRosters(ctx)
		if err != nil {
			return nil, h.handleError(err)
		}
		return &struct {
			Body RosterListResponse `json:"body"`
		}{Body: RosterListResponse{Success: true, Rosters: items, Count: len(items)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "roster-lines",
		Method:      http.MethodGet,
		Path:        "/roster/lines",
		Summary:     "Bidding lines for a month",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Year       int    `query:"year" required:"true" minimum:"1"`
		Month      string `query:"month" required:"true" doc:"1-12 or a month name"`
		TotalLines int    `query:"total_lines" minimum:"0" doc:"0 uses the employee count"`
	}) (*struct {
		Body LinesResponse `json:"body"`
	}, error) {
		month, err := roster.ResolveMonth(input.Month)
		if err != nil {
			return nil, h.handleError(err)
		}
		lines, err := h.engine.BiddingLines(ctx, input.Year, month, input.TotalLines)
		if err != nil {
			return nil, h.handleError(err)
		}
		total := input.TotalLines
		if total == 0 {
			for _, l := range lines {
				total = max(total, l.LineNumber)
			}
		}
		return &struct {
			Body LinesResponse `json:"body"`
		}{Body: LinesResponse{Year: input.Year, Month: month, TotalLines: total, Lines: mapLines(lines)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-roster",
		Method:      http.MethodGet,
		Path:        "/roster/{year}/{month}",
		Summary:     "Get a stored roster",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *rosterPath) (*struct {
		Body RosterResponse `json:"body"`
	}, error) {
		month, err := roster.ResolveMonth(input.Month)
		if err != nil {
			return nil, h.handleError(err)
		}
		res, err := h.engine.GetRoster(ctx, input.Year, month)
		if err != nil {
			return nil, h.handleError(err)
		}
		return &struct {
			Body RosterResponse `json:"body"`
		}{Body: rosterResponse(res, "")}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-roster",
		Method:      http.MethodDelete,
		Path:        "/roster/{year}/{month}",
		Summary:     "Delete a stored roster",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *rosterPath) (*struct {
		Body StatusResponse `json:"body"`
	}, error) {
		month, err := roster.ResolveMonth(input.Month)
		if err != nil {
			return nil, h.handleError(err)
		}
		if err := h.engine.DeleteRoster(ctx, input.Year, month); err != nil {
			return nil, h.handleError(err)
		}
		return &struct {
			Body StatusResponse `json:"body"`
		}{Body: StatusResponse{
			Success: true,
			Message: fmt.Sprintf("Roster for %s %d deleted", roster.MonthName(month), input.Year),
		}}, nil
	})
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"rosterline/internal/app"
	"rosterline/internal/config"
	"rosterline/internal/db"
	"rosterline/internal/engine"
	"rosterline/internal/metrics"
	"rosterline/internal/roster"
	"rosterline/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "rl",
	Short: "Rosterline CLI",
	Long: `Rosterline builds monthly staff rosters.
- Workspace: a directory holding rosterline.yml and the .rosterline database.
- Employees: seed sample staff with 'rl employee seed'; departments pick the rotation.
- Rosters: 'rl roster generate' puts a share of staff on vacation for the month,
  rotates everyone else through A/B/C shifts with rest days and turns some shift
  days into standby. Stored rosters can be shown, listed and deleted.
- Lines: 'rl roster lines' lays out bidding lines for a month.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("error:", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("ROSTERLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides logging.level)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func registerCommands() {
	rootCmd.AddCommand(employeeCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(serveCmd())
}

func employeeCmd() *cobra.Command {
	emp := &cobra.Command{Use: "employee", Short: "Manage employees"}
	emp.AddCommand(employeeSeedCmd())
	emp.AddCommand(employeeListCmd())
	return emp
}

func employeeSeedCmd() *cobra.Command {
	var count int
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample departments and employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				res, err := e.SeedEmployees(ctx, engine.SeedOptions{Count: count, Reset: reset})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(res)
				}
				fmt.Printf("seeded %d employees across %d departments (%d total)\n", res.Created, res.Departments, res.TotalEmployees)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "employees to create (0 uses seed.employees)")
	cmd.Flags().BoolVar(&reset, "reset", false, "replace existing employees and departments")
	return cmd
}

func employeeListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.Repo.ListEmployees(ctx, limit)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Department", "Position"})
				for _, emp := range items {
					tw.AppendRow(table.Row{emp.ID, emp.Name, emp.Department, emp.Position})
				}
				tw.AppendFooter(table.Row{"", "", "Total", len(items)})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "max employees (0 lists all)")
	return cmd
}

func rosterCmd() *cobra.Command {
	r := &cobra.Command{
		Use:   "roster",
		Short: "Generate and inspect monthly rosters",
	}
	r.AddCommand(rosterGenerateCmd())
	r.AddCommand(rosterListCmd())
	r.AddCommand(rosterShowCmd())
	r.AddCommand(rosterDeleteCmd())
	r.AddCommand(rosterLinesCmd())
	r.AddCommand(rosterShiftsCmd())
	return r
}

type monthFlags struct {
	year  int
	month string
}

func (f *monthFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "roster year")
	cmd.Flags().StringVar(&f.month, "month", "", "roster month (1-12 or a month name)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
}

func (f *monthFlags) resolve() (int, int, error) {
	month, err := roster.ResolveMonth(f.month)
	if err != nil {
		return 0, 0, err
	}
	return f.year, month, nil
}

func rosterGenerateCmd() *cobra.Command {
	var mf monthFlags
	var totalLines int
	var seed uint64
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store the roster for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mf.resolve()
			if err != nil {
				return err
			}
			opts := engine.GenerateOptions{Year: year, Month: month, TotalLines: totalLines}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				res, err := e.GenerateRoster(ctx, opts)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(res)
				}
				fmt.Printf("generated roster %s for %s %d: %d employees, %d on vacation, seed %d\n",
					res.Period.ID, roster.MonthName(month), year, len(res.Employees), len(res.Vacation), res.Period.Seed)
				printCoverage(res.Summary)
				return nil
			})
		},
	}
	mf.bind(cmd)
	cmd.Flags().IntVar(&totalLines, "total-lines", 0, "employees to include (0 uses everyone)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible vacation draw")
	return cmd
}

func rosterListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored rosters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListRosters(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Year", "Month", "Lines", "Status", "Seed", "Created"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Year, roster.MonthName(p.Month), p.TotalLines, p.Status, p.Seed, p.CreatedAt})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func rosterShowCmd() *cobra.Command {
	var mf monthFlags
	var summaryOnly bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mf.resolve()
			if err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				res, err := e.GetRoster(ctx, year, month)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(res)
				}
				if !summaryOnly {
					printGrid(res)
				}
				printCoverage(res.Summary)
				return nil
			})
		},
	}
	mf.bind(cmd)
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "only print daily coverage")
	return cmd
}

func rosterDeleteCmd() *cobra.Command {
	var mf monthFlags
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored roster so the month can be generated again",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mf.resolve()
			if err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				if err := e.DeleteRoster(ctx, year, month); err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"deleted": true, "year": year, "month": month})
				}
				fmt.Printf("deleted roster for %s %d\n", roster.MonthName(month), year)
				return nil
			})
		},
	}
	mf.bind(cmd)
	return cmd
}

func rosterLinesCmd() *cobra.Command {
	var mf monthFlags
	var totalLines int
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Lay out bidding lines for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mf.resolve()
			if err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				lines, err := e.BiddingLines(ctx, year, month, totalLines)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(lines)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Line", "Date", "Shift", "Department"})
				for _, l := range lines {
					tw.AppendRow(table.Row{l.LineNumber, roster.DateKey(l.Date), l.Shift, l.Department})
				}
				tw.Render()
				return nil
			})
		},
	}
	mf.bind(cmd)
	cmd.Flags().IntVar(&totalLines, "total-lines", 0, "number of lines (0 uses the employee count)")
	return cmd
}

func rosterShiftsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shifts",
		Short: "Show the shift catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetBool("json") {
				return printJSON(roster.Shifts)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Code", "Name", "Start", "End", "Standby"})
			for _, s := range roster.Shifts {
				tw.AppendRow(table.Row{s.Code, s.Name, s.Start, s.End, s.Code.Standby()})
			}
			tw.Render()
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Inspect workspace config",
		Long:  "rosterline.yml holds the roster policy (vacation share, standby limits, two-shift departments), seed defaults, server and logging settings.",
	}
	cfg.AddCommand(configShowCmd())
	cfg.AddCommand(configInitCmd())
	return cfg
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(cfg)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default rosterline.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rec, err := metrics.NewPromRecorder(reg)
			if err != nil {
				return err
			}
			ws, err := app.OpenWorkspace(cmd.Context(), viper.GetString("workspace"), app.Options{
				LogLevel: viper.GetString("log-level"),
				Metrics:  rec,
			})
			if err != nil {
				return err
			}
			defer ws.Close()
			if addr == "" {
				addr = ws.Config.Server.Addr
			}
			if basePath == "" {
				basePath = ws.Config.Server.BasePath
			}
			handler, err := server.New(server.Config{
				Engine:   ws.Engine,
				BasePath: basePath,
				Log:      ws.Log.With("http"),
				Metrics:  rec.Handler(),
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			ws.Log.Infof("serving Rosterline API on http://%s%s", addr, basePath)
			fmt.Printf("Serving Rosterline API on http://%s%s (OpenAPI at %s/openapi.json, Swagger UI at /docs, metrics at /metrics)\n", addr, basePath, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path (default server.base_path)")
	return cmd
}

// --- helpers ---

func withEngine(ctx context.Context, fn func(context.Context, engine.Engine) error) error {
	ws, err := app.OpenWorkspace(ctx, viper.GetString("workspace"), app.Options{LogLevel: viper.GetString("log-level")})
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ctx, ws.Engine)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var cellLabels = map[roster.Code]string{
	roster.CodeOff:      "-",
	roster.CodeVacation: "V",
	roster.CodeStandbyA: "a",
	roster.CodeStandbyB: "b",
	roster.CodeStandbyC: "c",
}

func cellLabel(c roster.Code) string {
	if l, ok := cellLabels[c]; ok {
		return l
	}
	return string(c)
}

// printGrid renders one row per employee and one column per day. Standby
// cells are lower case.
func printGrid(res engine.Roster) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	header := table.Row{"Employee", "Dept"}
	for _, d := range res.Dates {
		header = append(header, strconv.Itoa(d.Day()))
	}
	header = append(header, "A", "B", "C", "OFF", "VAC", "SB")
	tw.AppendHeader(header)
	for _, emp := range res.Employees {
		row := table.Row{emp.ID, emp.Department}
		days := res.Schedule[emp.ID]
		for _, d := range res.Dates {
			row = append(row, cellLabel(days[roster.DateKey(d)]))
		}
		st := res.Summary.EmployeeStats[emp.ID]
		row = append(row, st.A, st.B, st.C, st.Off, st.Vacation, st.Standby)
		tw.AppendRow(row)
	}
	tw.Render()
}

func printCoverage(s roster.Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Date", "A", "B", "C", "OFF", "VACATION", "Standby"})
	for _, d := range s.DailyCoverage {
		tw.AppendRow(table.Row{d.Date, d.A, d.B, d.C, d.Off, d.Vacation, d.Standby})
	}
	tw.AppendFooter(table.Row{"Employees", s.TotalEmployees, "", "", "", "Days", s.TotalDays})
	tw.Render()
}

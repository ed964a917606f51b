package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rosterline/internal/roster"
)

// FileName is the workspace config file.
const FileName = "rosterline.yml"

// Config models rosterline.yml.
type Config struct {
	Roster struct {
		VacationFraction    float64  `yaml:"vacation_fraction" json:"vacation_fraction"`
		StandbyPerShift     int      `yaml:"standby_per_shift" json:"standby_per_shift"`
		StandbyCap          int      `yaml:"standby_cap" json:"standby_cap"`
		TwoShiftDepartments []string `yaml:"two_shift_departments" json:"two_shift_departments"`
	} `yaml:"roster" json:"roster"`
	Seed struct {
		Departments []string `yaml:"departments" json:"departments"`
		Employees   int      `yaml:"employees" json:"employees"`
	} `yaml:"seed" json:"seed"`
	Server struct {
		Addr     string `yaml:"addr" json:"addr"`
		BasePath string `yaml:"base_path" json:"base_path"`
	} `yaml:"server" json:"server"`
	Logging struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"logging" json:"logging"`
}

// Load reads and validates config from workspace.
func Load(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found; create it with rl config init", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns Default() if the config file does not exist.
func LoadOptional(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("config.roster: %w", err)
	}
	for _, d := range c.Roster.TwoShiftDepartments {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("config.roster.two_shift_departments contains an empty name")
		}
	}
	if len(c.Seed.Departments) == 0 {
		return fmt.Errorf("config.seed.departments is required")
	}
	seen := map[string]bool{}
	for _, d := range c.Seed.Departments {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("config.seed.departments contains an empty name")
		}
		if seen[d] {
			return fmt.Errorf("config.seed.departments lists %s twice", d)
		}
		seen[d] = true
	}
	if c.Seed.Employees < 0 {
		return fmt.Errorf("config.seed.employees must not be negative")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with /")
	}
	return nil
}

// Policy converts the roster section into the generation policy.
func (c *Config) Policy() roster.Policy {
	departments := make(map[string]roster.PatternKind, len(c.Roster.TwoShiftDepartments))
	for _, d := range c.Roster.TwoShiftDepartments {
		departments[d] = roster.TwoShiftPattern
	}
	return roster.Policy{
		VacationFraction: c.Roster.VacationFraction,
		StandbyPerShift:  c.Roster.StandbyPerShift,
		StandbyCap:       c.Roster.StandbyCap,
		Departments:      departments,
	}
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, FileName)
}

// GenerateDefault returns default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

// Default returns the default Config struct.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultTemplate), &cfg); err != nil {
		panic(fmt.Sprintf("default config template: %v", err))
	}
	return &cfg
}

// FromYAML parses and validates config from raw YAML bytes. Keys missing from
// data keep their default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `roster:
  vacation_fraction: 0.10
  standby_per_shift: 12
  standby_cap: 3
  two_shift_departments:
    - Station Staff
    - Supervisors

seed:
  departments:
    - Operations
    - Station Staff
    - Supervisors
    - Maintenance
  employees: 100

server:
  addr: 127.0.0.1:8080
  base_path: /v0

logging:
  level: info
`

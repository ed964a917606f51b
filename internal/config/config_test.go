package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterline/internal/roster"
)

func TestDefaultMatchesRosterDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	p := cfg.Policy()
	want := roster.DefaultPolicy()
	assert.Equal(t, want.VacationFraction, p.VacationFraction)
	assert.Equal(t, want.StandbyPerShift, p.StandbyPerShift)
	assert.Equal(t, want.StandbyCap, p.StandbyCap)
	assert.Equal(t, want.Departments, p.Departments)
	assert.Equal(t, []string{"Operations", "Station Staff", "Supervisors", "Maintenance"}, cfg.Seed.Departments)
	assert.Equal(t, 100, cfg.Seed.Employees)
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("roster:\n  standby_cap: 2\nlogging:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Roster.StandbyCap)
	assert.Equal(t, 12, cfg.Roster.StandbyPerShift)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/v0", cfg.Server.BasePath)
}

func TestFromYAMLInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":        "roster: [",
		"fraction":      "roster:\n  vacation_fraction: 1.2\n",
		"negative cap":  "roster:\n  standby_cap: -1\n",
		"empty dept":    "roster:\n  two_shift_departments: [\"\"]\n",
		"dup seed dept": "seed:\n  departments: [A, A]\n",
		"base path":     "server:\n  base_path: v0\n",
	}
	for name, data := range cases {
		_, err := FromYAML([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)

	cfg, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("seed:\n  employees: 20\n"), 0o644))
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Seed.Employees)

	cfg, err = FromFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Seed.Employees)
}

func TestGenerateDefaultParses(t *testing.T) {
	cfg, err := FromYAML([]byte(GenerateDefault()))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

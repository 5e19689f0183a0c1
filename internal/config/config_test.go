package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Simulation: SimulationConfig{
			ContentDir:  "content",
			ScenarioDir: "content/scenarios",
			ScriptDir:   "content/scripts",
			Workers:     4,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
simulation:
  content_dir: /srv/tdnd/content
  scenario_dir: /srv/tdnd/scenarios
  workers: 2
  script_instruction_limit: 5000
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "/srv/tdnd/content", cfg.Simulation.ContentDir)
	assert.Equal(t, "/srv/tdnd/scenarios", cfg.Simulation.ScenarioDir)
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, 5000, cfg.Simulation.ScriptInstructionLimit)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "content", cfg.Simulation.ContentDir)
	assert.Equal(t, 4, cfg.Simulation.Workers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TDND_SIMULATION_WORKERS", "9")
	t.Setenv("TDND_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulation.Workers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  workers: 0\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "simulation.workers")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "error")
	v.Set("logging.format", "json")
	v.Set("logging.output", "stdout")
	v.Set("simulation.content_dir", "c")
	v.Set("simulation.scenario_dir", "s")
	v.Set("simulation.workers", 1)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "s", cfg.Simulation.ScenarioDir)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	assert.ErrorContains(t, cfg.Validate(), "logging.output")
}

func TestValidateSimulationDirsEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.ContentDir = ""
	cfg.Simulation.ScenarioDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.content_dir")
	assert.Contains(t, err.Error(), "simulation.scenario_dir")
}

func TestValidateScriptDirOptional(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.ScriptDir = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Simulation.Workers = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "simulation.workers")
}

// Property-based tests

func TestPropertyValidWorkers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		workers := rapid.IntRange(1, 1024).Draw(t, "workers")
		cfg := validConfig()
		cfg.Simulation.Workers = workers
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid workers %d rejected: %v", workers, err)
		}
	})
}

func TestPropertyInvalidWorkers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		workers := rapid.IntRange(-1000, 0).Draw(t, "workers")
		cfg := validConfig()
		cfg.Simulation.Workers = workers
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid workers %d accepted", workers)
		}
	})
}

func TestPropertyInstructionLimitNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(-1000, 1000).Draw(t, "limit")
		cfg := validConfig()
		cfg.Simulation.ScriptInstructionLimit = limit
		err := cfg.Validate()
		if (limit < 0) != (err != nil) {
			t.Fatalf("limit=%d err=%v", limit, err)
		}
	})
}

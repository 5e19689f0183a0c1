// Package config provides Viper-based configuration loading for the tdnd simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. TDND_LOGGING_LEVEL.
const EnvPrefix = "TDND"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where logs are written: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// SimulationConfig holds scenario runner settings.
type SimulationConfig struct {
	// ContentDir holds the armor/, weapons/, and items/ catalog directories.
	ContentDir string `mapstructure:"content_dir"`
	// ScenarioDir holds the scenario YAML files run when no single scenario is named.
	ScenarioDir string `mapstructure:"scenario_dir"`
	// ScriptDir holds shared Lua hooks loaded into every run. Empty disables them.
	ScriptDir string `mapstructure:"script_dir"`
	// Workers is the number of scenarios run concurrently.
	Workers int `mapstructure:"workers"`
	// ScriptInstructionLimit caps Lua opcodes per hook call. 0 uses the scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.ContentDir == "" {
		errs = append(errs, "simulation.content_dir must not be empty")
	}
	if s.ScenarioDir == "" {
		errs = append(errs, "simulation.scenario_dir must not be empty")
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Sprintf("simulation.workers must be >= 1, got %d", s.Workers))
	}
	if s.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("simulation.script_instruction_limit must be >= 0, got %d", s.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and TDND_ environment
// overrides registered.
//
// Postcondition: Returns a non-nil Viper.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("simulation.content_dir", "content")
	v.SetDefault("simulation.scenario_dir", "content/scenarios")
	v.SetDefault("simulation.script_dir", "")
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.script_instruction_limit", 0)
}

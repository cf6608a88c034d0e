// Package config loads changeset settings from file, environment, and
// defaults, and manages the tool's data directories.
//
// Settings are read from .changeset.yaml in the current directory or $HOME,
// overridable via CHANGESET_* environment variables. A missing config file
// is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".changeset"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for changeset settings.
const envPrefix = "CHANGESET"

// DefaultMaxRuns is how many run records are kept before pruning.
const DefaultMaxRuns = 50

// Config holds all changeset settings.
type Config struct {
	// Root is the default sandbox root when a task file or flag does not
	// name one.
	Root string `mapstructure:"root"`

	// RunsDir is where run records are stored.
	RunsDir string `mapstructure:"runs_dir"`

	// MaxRuns caps how many run records are retained.
	MaxRuns int `mapstructure:"max_runs"`

	// NoColor disables colored console output.
	NoColor bool `mapstructure:"no_color"`
}

// Load reads configuration from file, env vars, and defaults. If configPath
// is non-empty it is used as the explicit config file path; otherwise the
// file is searched in CWD and $HOME.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("root", ".")
	viperCfg.SetDefault("runs_dir", "")
	viperCfg.SetDefault("max_runs", DefaultMaxRuns)
	viperCfg.SetDefault("no_color", false)
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.MaxRuns < 0 {
		return fmt.Errorf("max_runs must not be negative, got %d", c.MaxRuns)
	}
	return nil
}

// ResolveRunsDir returns the runs directory, defaulting to
// ~/.changeset/runs, and can be overridden with CHANGESET_RUNS_DIR or the
// runs_dir setting.
func (c *Config) ResolveRunsDir() (string, error) {
	if c.RunsDir != "" {
		return c.RunsDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".changeset", "runs"), nil
}

// EnsureRunsDir creates the runs directory if needed and returns it.
func (c *Config) EnsureRunsDir() (string, error) {
	dir, err := c.ResolveRunsDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create runs directory %s: %w", dir, err)
	}
	return dir, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/diff"
	"github.com/codimo/textmerge/internal/logging"
	"github.com/codimo/textmerge/internal/merge"
)

// Engine names
const (
	EngineHunk = "hunk"
	EngineGit  = "git"
)

// Config holds all configuration options for textmerge
type Config struct {
	// Merge configuration
	Engine string      `mapstructure:"engine"`
	Differ string      `mapstructure:"differ"`
	Style  merge.Style `mapstructure:"style"`

	// Directory merges
	Jobs int `mapstructure:"jobs"`

	// Process wrapper
	GitBinary string `mapstructure:"git_binary"`

	LogLevel string `mapstructure:"log_level"`
}

const (
	// Default configuration values
	DefaultEngine    = EngineHunk
	DefaultDiffer    = diff.NameTextDiff
	DefaultStyle     = merge.StyleMerge
	DefaultJobs      = 4
	DefaultLogLevel  = "info"
	DefaultGitBinary = "git"

	EnvPrefix  = "TEXTMERGE"
	configName = ".textmerge"
)

// Default returns a config holding only default values
func Default() *Config {
	return &Config{
		Engine:    DefaultEngine,
		Differ:    DefaultDiffer,
		Style:     DefaultStyle,
		Jobs:      DefaultJobs,
		LogLevel:  DefaultLogLevel,
		GitBinary: DefaultGitBinary,
	}
}

// Load reads configuration from defaults, an optional YAML file and
// TEXTMERGE_* environment variables. An explicit path must exist; without
// one, .textmerge.yaml is looked up in the working and home directories.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("engine", defaults.Engine)
	v.SetDefault("differ", defaults.Differ)
	v.SetDefault("style", string(defaults.Style))
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("git_binary", defaults.GitBinary)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error when none was requested
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown engine, differ, style or log level names and
// a non-positive job count
func (c *Config) Validate() error {
	if c.Engine != EngineHunk && c.Engine != EngineGit {
		return fmt.Errorf("%w: engine %q", core.ErrInvalidConfig, c.Engine)
	}
	if !slices.Contains(diff.Names(), c.Differ) {
		return fmt.Errorf("%w: differ %q", core.ErrInvalidConfig, c.Differ)
	}
	if c.Style != merge.StyleMerge && c.Style != merge.StyleDiff3 {
		return fmt.Errorf("%w: style %q", core.ErrInvalidConfig, c.Style)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be positive, got %d", core.ErrInvalidConfig, c.Jobs)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	if c.Engine == EngineGit && c.GitBinary == "" {
		return fmt.Errorf("%w: git_binary is empty", core.ErrInvalidConfig)
	}
	return nil
}

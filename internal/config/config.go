package config

import (
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config holds all pgvacuum configuration.
type Config struct {
	DBURL    string   `yaml:"db_url"`
	Defaults Defaults `yaml:"defaults"`
	Exclude  Exclude  `yaml:"exclude"`
}

// Defaults holds default CLI flag values.
type Defaults struct {
	Format     string `yaml:"format"`      // text or json
	Timeout    string `yaml:"timeout"`     // parsed as time.Duration
	SkipPeriod string `yaml:"skip_period"` // parsed as time.Duration, empty means none
}

// Exclude lists schemas and tables removed from candidacy when no explicit
// targets are given. Exclusions narrow skip-period evaluation and reporting
// only; a whole-database statement still covers every table on the server.
type Exclude struct {
	Schemas []string `yaml:"schemas"`
	Tables  []string `yaml:"tables"` // trailing-* wildcards supported
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			Format:  "text",
			Timeout: "30s",
		},
	}
}

// Load reads configuration from .pgvacuum.yml in the given directory,
// falling back to ~/.pgvacuum.yml. Returns DefaultConfig if no file found.
func Load(dir string) (Config, error) {
	cfg := DefaultConfig()

	paths := []string{filepath.Join(dir, ".pgvacuum.yml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pgvacuum.yml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return cfg, nil
}

// TimeoutDuration parses the Defaults.Timeout string as a time.Duration.
// Returns 30s if parsing fails.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Defaults.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.Defaults.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SkipPeriodDuration parses the Defaults.SkipPeriod string as a time.Duration.
// Returns 0 (no skip period) if unset or unparsable.
func (c *Config) SkipPeriodDuration() time.Duration {
	if c.Defaults.SkipPeriod == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Defaults.SkipPeriod)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

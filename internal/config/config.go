package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures how the locator searches for, probes and caches the tool.
type Config struct {
	Version   int             `yaml:"version"`
	Tool      ToolConfig      `yaml:"tool"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// ToolConfig names the executable and the argument used to probe it.
type ToolConfig struct {
	Name       string `yaml:"name"`
	VersionArg string `yaml:"version_arg"`
}

// DiscoveryConfig tunes the discovery pass.
type DiscoveryConfig struct {
	ExtraPaths   []string `yaml:"extra_paths,omitempty"`
	ProbeWorkers int      `yaml:"probe_workers"`
	// ProbeTimeout is a Go duration string. Empty or "0" waits forever.
	ProbeTimeout string `yaml:"probe_timeout,omitempty"`
}

// CacheConfig controls the persisted last-known-good path.
type CacheConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Tool: ToolConfig{
			Name:       "claude",
			VersionArg: "--version",
		},
		Discovery: DiscoveryConfig{
			ProbeWorkers: 1,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(true),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.Tool.Name) == "" {
		c.Tool.Name = defaults.Tool.Name
	}
	if strings.TrimSpace(c.Tool.VersionArg) == "" {
		c.Tool.VersionArg = defaults.Tool.VersionArg
	}
	if c.Discovery.ProbeWorkers == 0 {
		c.Discovery.ProbeWorkers = defaults.Discovery.ProbeWorkers
	}
	if c.Cache.Enabled == nil {
		c.Cache.Enabled = boolPtr(true)
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// CacheEnabled reports whether the installation cache is used. Nil means
// enabled.
func (c Config) CacheEnabled() bool {
	if c.Cache.Enabled == nil {
		return true
	}
	return *c.Cache.Enabled
}

// ProbeTimeout parses discovery.probe_timeout. Zero means no timeout.
func (c Config) ProbeTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Discovery.ProbeTimeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse discovery.probe_timeout: %w", err)
	}
	return d, nil
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}

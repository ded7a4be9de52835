package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

const maxProbeWorkers = 32

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the loaded configuration and returns every finding.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersion()...)
	results = append(results, c.validateTool()...)
	results = append(results, c.validateDiscovery()...)
	results = append(results, c.validateExtraPaths()...)
	results = append(results, c.validateLog()...)
	return results
}

// HasErrors reports whether any result is an error.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level == "error" {
			return true
		}
	}
	return false
}

func (c Config) validateVersion() []ValidationResult {
	if c.Version == 1 {
		return nil
	}
	return []ValidationResult{{
		Level:   "warning",
		Message: fmt.Sprintf("unknown config version %d, expected 1", c.Version),
	}}
}

func (c Config) validateTool() []ValidationResult {
	var results []ValidationResult
	if strings.ContainsAny(c.Tool.Name, `/\`) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("tool.name %q must be a bare command name; use discovery.extra_paths for full paths", c.Tool.Name),
		})
	}
	if strings.ContainsAny(c.Tool.VersionArg, " \t") {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("tool.version_arg %q contains whitespace and is passed as a single argument", c.Tool.VersionArg),
		})
	}
	return results
}

func (c Config) validateDiscovery() []ValidationResult {
	var results []ValidationResult
	switch workers := c.Discovery.ProbeWorkers; {
	case workers < 0:
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("discovery.probe_workers must be positive, got %d", workers),
		})
	case workers > maxProbeWorkers:
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("discovery.probe_workers %d is unusually high (max useful is about %d)", workers, maxProbeWorkers),
		})
	}

	timeout, err := c.ProbeTimeout()
	switch {
	case err != nil:
		results = append(results, ValidationResult{Level: "error", Message: err.Error()})
	case timeout < 0:
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("discovery.probe_timeout must not be negative, got %s", timeout),
		})
	}
	return results
}

func (c Config) validateExtraPaths() []ValidationResult {
	var results []ValidationResult
	for _, path := range c.Discovery.ExtraPaths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("extra path %q is relative and depends on the working directory", path),
			})
			continue
		}
		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("extra path %q not found", path),
			})
		case !info.Mode().IsRegular():
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("extra path %q is not a regular file", path),
			})
		}
	}
	return results
}

func (c Config) validateLog() []ValidationResult {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	for _, known := range logLevels {
		if level == known {
			return nil
		}
	}
	return []ValidationResult{{
		Level:   "error",
		Message: fmt.Sprintf("log.level %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", ")),
	}}
}

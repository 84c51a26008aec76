package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the on-disk shape of a run descriptor: everything needed to
// build an engine.SimulationOptions and a target to drive, without
// requiring a Go file for the common case of hitting one HTTP endpoint.
type Config struct {
	Name       string           `yaml:"name"`
	Version    string           `yaml:"version"`
	Target     TargetConfig     `yaml:"target"`
	Simulation SimulationConfig `yaml:"simulation"`
	Reporting  ReportingConfig  `yaml:"reporting"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	raw        map[string]interface{}
}

// TargetConfig describes the HTTP endpoint the built-in steplib scenario
// drives when no custom Go scenario file is given.
type TargetConfig struct {
	URL    string `yaml:"url"`
	Method string `yaml:"method"`
}

// SimulationConfig holds the engine.SimulationOptions settings in the
// string/int form that survives YAML round-tripping: Users is a count
// rather than a list of ids, and Ramp names a distribution rather than
// holding one.
type SimulationConfig struct {
	Concurrency    int    `yaml:"concurrency"`
	Users          int    `yaml:"users"`
	Requests       int64  `yaml:"requests"`
	Duration       string `yaml:"duration"`
	TimeoutPerStep string `yaml:"timeout_per_step"`
	Ramp           string `yaml:"ramp"`
}

// ReportingConfig controls where results and captured exceptions land.
type ReportingConfig struct {
	Format    string `yaml:"format"`
	ErrorFile string `yaml:"error_file"`
	OutFile   string `yaml:"out_file"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Simulation.Concurrency < 0 {
		return fmt.Errorf("simulation.concurrency must be >= 0")
	}

	validFormats := []string{"", "console", "json", "junit", "markdown", "html"}
	if !contains(validFormats, c.Reporting.Format) {
		return fmt.Errorf("invalid reporting.format: %s (must be one of: %s)", c.Reporting.Format, strings.Join(validFormats[1:], ", "))
	}

	return nil
}

func (c *Config) ApplyDefaults() {
	if c.Simulation.TimeoutPerStep == "" {
		c.Simulation.TimeoutPerStep = "5s"
	}
	if c.Reporting.Format == "" {
		c.Reporting.Format = "console"
	}
	if c.Reporting.ErrorFile == "" {
		c.Reporting.ErrorFile = ".simcore/errors.log"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
	if c.Target.Method == "" {
		c.Target.Method = "GET"
	}
}

func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")

	var current interface{} = c.raw
	for _, part := range parts {
		if m, ok := current.(map[string]interface{}); ok {
			if val, exists := m[part]; exists {
				current = val
			} else {
				return nil, fmt.Errorf("key not found: %s", key)
			}
		} else {
			return nil, fmt.Errorf("invalid path: %s", key)
		}
	}

	return current, nil
}

func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")

	if c.raw == nil {
		c.raw = make(map[string]interface{})
	}

	current := c.raw
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
		} else {
			if _, exists := current[part]; !exists {
				current[part] = make(map[string]interface{})
			}

			if m, ok := current[part].(map[string]interface{}); ok {
				current = m
			} else {
				return fmt.Errorf("cannot set value at path: %s", key)
			}
		}
	}

	return nil
}

func (c *Config) Raw() map[string]interface{} {
	return c.raw
}

// DurationValue and TimeoutPerStepValue parse the simulation's string
// duration fields, falling back
// to the same defaults engine.SimulationOptions itself applies for a zero
// value.
func (c *Config) DurationValue() time.Duration {
	d, err := time.ParseDuration(c.Simulation.Duration)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) TimeoutPerStepValue() time.Duration {
	d, err := time.ParseDuration(c.Simulation.TimeoutPerStep)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

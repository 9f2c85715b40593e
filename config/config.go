// Package config loads tool configuration and household contexts from
// JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/tmaury/fincoach"
)

// Config represents the complete tool configuration.
type Config struct {
	Advisor    AdvisorConfig    `json:"advisor" yaml:"advisor"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Coach      CoachConfig      `json:"coach" yaml:"coach"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	LogLevel   string           `json:"log_level" yaml:"log_level" default:"warn"`
}

// AdvisorConfig configures the reasoning collaborator.
type AdvisorConfig struct {
	Model          string `json:"model" yaml:"model" default:"gemini-2.5-flash"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" default:"15"`
	Offline        bool   `json:"offline" yaml:"offline"`
}

// Timeout returns the configured advisor timeout as a duration.
func (a AdvisorConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SimulationConfig contains Monte Carlo parameters.
type SimulationConfig struct {
	Iterations int   `json:"iterations" yaml:"iterations" default:"1000"`
	Seed       int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// CoachConfig contains refinement loop parameters.
type CoachConfig struct {
	Passes        int `json:"passes" yaml:"passes" default:"3"`
	ScenarioCount int `json:"scenario_count" yaml:"scenario_count" default:"5"`
}

// JournalConfig contains session recording parameters.
type JournalConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
// Missing fields fall back to their defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := unmarshalFile(path, cfg); err != nil {
		return nil, err
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if isYAMLPath(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Iterations < 1 {
		return fmt.Errorf("simulation.iterations must be positive")
	}
	if c.Coach.Passes < 1 {
		return fmt.Errorf("coach.passes must be positive")
	}
	if c.Coach.ScenarioCount < 1 {
		return fmt.Errorf("coach.scenario_count must be positive")
	}
	if c.Advisor.TimeoutSeconds < 1 {
		return fmt.Errorf("advisor.timeout_seconds must be positive")
	}
	return nil
}

// LoadContext loads a household context from a JSON or YAML file and
// validates it.
func LoadContext(path string) (fincoach.SimulationContext, error) {
	var c fincoach.SimulationContext
	if err := unmarshalFile(path, &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// LoadChanges loads what-if changes from a JSON or YAML file.
func LoadChanges(path string) (fincoach.WhatIfChanges, error) {
	var w fincoach.WhatIfChanges
	err := unmarshalFile(path, &w)
	return w, err
}

// unmarshalFile tries YAML first and falls back to JSON, so either format
// works regardless of the file extension.
func unmarshalFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if yamlErr := yaml.Unmarshal(data, v); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, v); jsonErr != nil {
			return fmt.Errorf("parse %s (tried YAML and JSON): %w", path, yamlErr)
		}
	}
	return nil
}

func isYAMLPath(path string) bool {
	return (len(path) > 5 && path[len(path)-5:] == ".yaml") ||
		(len(path) > 4 && path[len(path)-4:] == ".yml")
}

// Package config loads procdata configuration: named data sources and
// CLI defaults from procdata.yaml, the environment and command flags.
package config

import (
	"fmt"
	"sort"
)

// SourceConfig describes one named data source.
type SourceConfig struct {
	// Driver is the database/sql driver name (pgx, duckdb, ...).
	Driver string `koanf:"driver"`

	// DSN is the opaque connection string handed to the driver.
	DSN string `koanf:"dsn"`

	// Dialect overrides the call dialect resolved from the driver
	// name. Empty uses the driver's registered dialect.
	Dialect string `koanf:"dialect"`
}

// Config holds all CLI configuration options.
type Config struct {
	DefaultSource string                  `koanf:"default_source"`
	HistoryPath   string                  `koanf:"history_path"`
	Output        string                  `koanf:"output"`
	Verbose       bool                    `koanf:"verbose"`
	Sources       map[string]SourceConfig `koanf:"sources"`
}

// Source resolves a named source, falling back to the configured
// default when name is empty.
func (c *Config) Source(name string) (SourceConfig, string, error) {
	if name == "" {
		name = c.DefaultSource
	}
	if name == "" {
		return SourceConfig{}, "", fmt.Errorf("no source specified and no default_source configured")
	}
	src, ok := c.Sources[name]
	if !ok {
		return SourceConfig{}, "", &UnknownSourceError{Name: name, Available: c.SourceNames()}
	}
	return src, name, nil
}

// SourceNames returns all configured source names (sorted).
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownSourceError is returned when a source name is not configured.
type UnknownSourceError struct {
	Name      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source %q\nConfigured sources: %v\nHint: Check the sources section of procdata.yaml", e.Name, e.Available)
}

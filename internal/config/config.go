// Package config loads the YAML file that supplies defaults to the command
// line tool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ifcstep/ifcstep/internal/ifc"
)

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Parse  ParseConfig  `yaml:"parse"`
	Header HeaderConfig `yaml:"header"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

type ParseConfig struct {
	// Verify checks reference types after loading.
	Verify bool `yaml:"verify"`
	// Concurrency bounds the number of files parsed at once. Zero picks a
	// value from the number of CPUs.
	Concurrency int `yaml:"concurrency"`
}

// HeaderConfig is written into FILE_NAME of files the tool creates.
type HeaderConfig struct {
	Author            string `yaml:"author"`
	Organization      string `yaml:"organization"`
	OriginatingSystem string `yaml:"originating_system"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Parse: ParseConfig{
			Verify: true,
		},
		Header: HeaderConfig{
			OriginatingSystem: "ifcstep",
		},
	}
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured level, or info when it is unknown.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

func (c *Config) Validate() error {
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json: got %q", c.Log.Format)
	}
	if c.Parse.Concurrency < 0 {
		return fmt.Errorf("parse.concurrency must not be negative")
	}
	return nil
}

// BuilderOptions turns the header settings into options for ifc.NewBuilder.
func (c *Config) BuilderOptions() []ifc.BuilderOption {
	return []ifc.BuilderOption{
		ifc.WithAuthor(c.Header.Author),
		ifc.WithOrganization(c.Header.Organization),
		ifc.WithOriginatingSystem(c.Header.OriginatingSystem),
	}
}

// LoadFromFile reads path over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

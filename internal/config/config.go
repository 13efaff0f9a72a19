// Package config handles reading and writing the dlvr configuration file (~/.dlvr/config.toml).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds dlvr configuration settings.
type Config struct {
	DefaultSource string   `toml:"default_source,omitempty" json:"default_source,omitempty"`
	DefaultFormat string   `toml:"default_format,omitempty" json:"default_format,omitempty"`
	LogLevel      string   `toml:"log_level,omitempty" json:"log_level,omitempty"`
	MutationTools []string `toml:"mutation_tools,omitempty" json:"mutation_tools,omitempty"`
	MomentTools   []string `toml:"moment_tools,omitempty" json:"moment_tools,omitempty"`
}

// validKeys lists the allowed configuration keys.
var validKeys = map[string]bool{
	"default_source": true,
	"default_format": true,
	"log_level":      true,
	"mutation_tools": true,
	"moment_tools":   true,
}

// ValidKeys returns the sorted list of valid configuration keys.
func ValidKeys() []string {
	return []string{"default_format", "default_source", "log_level", "moment_tools", "mutation_tools"}
}

// Path returns the default config file path (~/.dlvr/config.toml).
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dlvr", "config.toml")
	}
	return filepath.Join(home, ".dlvr", "config.toml")
}

// LoadFrom reads the config from a specific path. Returns an empty Config if
// the file does not exist. Supports both TOML and JSON formats (detected by
// file extension; defaults to TOML).
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path, creating parent directories as needed.
// Writes TOML format regardless of file extension.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Get returns the string value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	if !validKeys[key] {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	switch key {
	case "default_source":
		return c.DefaultSource, nil
	case "default_format":
		return c.DefaultFormat, nil
	case "log_level":
		return c.LogLevel, nil
	case "mutation_tools":
		return toolsString(c.MutationTools)
	case "moment_tools":
		return toolsString(c.MomentTools)
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set assigns a value to a configuration key.
func (c *Config) Set(key, value string) error {
	if !validKeys[key] {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	switch key {
	case "default_source":
		c.DefaultSource = value
	case "default_format":
		if value != "" && value != "table" && value != "json" {
			return fmt.Errorf("default_format must be \"table\" or \"json\", got %q", value)
		}
		c.DefaultFormat = value
	case "log_level":
		if value != "" {
			if _, err := logrus.ParseLevel(value); err != nil {
				return fmt.Errorf("log_level: %w", err)
			}
		}
		c.LogLevel = value
	case "mutation_tools":
		tools, err := parseTools(key, value)
		if err != nil {
			return err
		}
		c.MutationTools = tools
	case "moment_tools":
		tools, err := parseTools(key, value)
		if err != nil {
			return err
		}
		c.MomentTools = tools
	}
	return nil
}

func toolsString(tools []string) (string, error) {
	if len(tools) == 0 {
		return "", nil
	}
	b, err := json.Marshal(tools)
	if err != nil {
		return "", fmt.Errorf("marshaling tools: %w", err)
	}
	return string(b), nil
}

// parseTools decodes a JSON array of non-empty tool names.
func parseTools(key, value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var tools []string
	if err := json.Unmarshal([]byte(value), &tools); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of strings, e.g. '[\"Write\",\"Edit\"]': %w", key, err)
	}
	for i, name := range tools {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%s[%d]: tool name must be non-empty", key, i)
		}
	}
	return tools, nil
}

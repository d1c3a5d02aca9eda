package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read when no --config flag is given.
const DefaultPath = "sail.yaml"

// Config represents the structure of sail.yaml.
type Config struct {
	Log        LogConfig        `yaml:"log" json:"log"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Playground PlaygroundConfig `yaml:"playground" json:"playground"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type ServerConfig struct {
	Port             string `yaml:"port" json:"port"`
	ValidateRequests bool   `yaml:"validate_requests" json:"validate_requests"`
	// RedisURL switches sessions to a shared Redis store (redis://host:port/db).
	RedisURL string `yaml:"redis_url" json:"redis_url"`
	// SessionTTL expires idle sessions in either store, e.g. "30m". Empty keeps them forever.
	SessionTTL string `yaml:"session_ttl" json:"session_ttl"`
}

// TTL parses SessionTTL. Validate has already rejected malformed values.
func (s ServerConfig) TTL() time.Duration {
	if s.SessionTTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.SessionTTL)
	return d
}

type PlaygroundConfig struct {
	// Display is the default dump mode: "history" or "latest".
	Display       string `yaml:"display" json:"display"`
	InitialSource string `yaml:"initial_source" json:"initial_source"`
	ExamplesDir   string `yaml:"examples_dir" json:"examples_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: logging.FormatText},
		Server: ServerConfig{Port: "8080", ValidateRequests: true},
		Playground: PlaygroundConfig{
			Display: string(sail.DumpHistory),
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file at the default path is not an error; a missing file that
// was asked for explicitly is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format)
	}
	if _, err := sail.ParseDumpMode(c.Playground.Display); err != nil {
		return err
	}
	if c.Server.SessionTTL != "" {
		if d, err := time.ParseDuration(c.Server.SessionTTL); err != nil || d < 0 {
			return fmt.Errorf("invalid session_ttl %q", c.Server.SessionTTL)
		}
	}
	return nil
}

// DumpMode returns the configured default dump mode.
func (c Config) DumpMode() sail.DumpMode {
	mode, err := sail.ParseDumpMode(c.Playground.Display)
	if err != nil {
		return sail.DumpHistory
	}
	return mode
}

// Package config loads the sidecar's YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy/vimy-tactics/rules"
)

type Config struct {
	SocketPath string        `yaml:"socket_path"`
	LogLevel   string        `yaml:"log_level"`
	Journal    JournalConfig `yaml:"journal"`
	Rules      RulesConfig   `yaml:"rules"`
	Pathfinder PathConfig    `yaml:"pathfinder"`
}

type JournalConfig struct {
	Backend string `yaml:"backend"` // "memory" or "sqlite"
	Path    string `yaml:"path"`
	// MaxEntries caps the memory backend; the oldest decisions are dropped
	// first. Zero keeps everything.
	MaxEntries int `yaml:"max_entries"`
}

type RulesConfig struct {
	// TickBudget bounds how long per-unit routing may run in one tick.
	TickBudget time.Duration  `yaml:"tick_budget"`
	Doctrine   rules.Doctrine `yaml:"doctrine"`
}

type PathConfig struct {
	MaxExpansions int `yaml:"max_expansions"`
}

// DefaultJournalEntries bounds the in-memory journal of a long-running
// sidecar.
const DefaultJournalEntries = 10000

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SocketPath: "/tmp/vimy-tactics.sock",
		LogLevel:   "info",
		Journal:    JournalConfig{Backend: "memory", MaxEntries: DefaultJournalEntries},
		Rules: RulesConfig{
			TickBudget: 50 * time.Millisecond,
			Doctrine:   rules.DefaultDoctrine(),
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the sidecar cannot run with and clamps doctrine
// weights into range.
func (c *Config) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket_path is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Journal.Backend {
	case "", "memory":
	case "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unsupported journal backend: %s", c.Journal.Backend)
	}
	if c.Journal.MaxEntries < 0 {
		return fmt.Errorf("journal.max_entries must not be negative")
	}
	if c.Rules.TickBudget < 0 {
		return fmt.Errorf("rules.tick_budget must not be negative")
	}
	if c.Pathfinder.MaxExpansions < 0 {
		return fmt.Errorf("pathfinder.max_expansions must not be negative")
	}
	c.Rules.Doctrine.Validate()
	return nil
}

// ParseLevel maps a config log level to slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vimy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
socket_path: /tmp/test.sock
log_level: debug
journal:
  backend: sqlite
  path: /tmp/journal.db
  max_entries: 500
rules:
  tick_budget: 20ms
  doctrine:
    name: Rush
    economy_priority: 1.7
    expansion: 0.9
pathfinder:
  max_expansions: 4096
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.sock", cfg.SocketPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Journal.Backend)
	assert.Equal(t, 500, cfg.Journal.MaxEntries)
	assert.Equal(t, 20*time.Millisecond, cfg.Rules.TickBudget)
	assert.Equal(t, "Rush", cfg.Rules.Doctrine.Name)
	assert.Equal(t, 1.0, cfg.Rules.Doctrine.EconomyPriority, "clamped")
	assert.Equal(t, 0.9, cfg.Rules.Doctrine.Expansion)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, Default().Rules.Doctrine.ScoutPriority, cfg.Rules.Doctrine.ScoutPriority)
	assert.Equal(t, 4096, cfg.Pathfinder.MaxExpansions)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad level":            "log_level: loud\n",
		"unknown backend":      "journal:\n  backend: redis\n",
		"sqlite without path":  "journal:\n  backend: sqlite\n",
		"negative budget":      "rules:\n  tick_budget: -1s\n",
		"negative journal cap": "journal:\n  max_entries: -1\n",
		"empty socket":         "socket_path: \"\"\n",
		"malformed":            "socket_path: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewManager_NoConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	mgr, err := NewManager(configFile)
	require.NoError(t, err)
	require.NotNil(t, mgr)

	assert.Equal(t, configFile, mgr.ConfigPath())
	assert.NotNil(t, mgr.AllSettings())
	assert.Equal(t, 15, mgr.Get("presence.session_timeout_minutes"))
}

func TestNewManager_WithExistingConfig(t *testing.T) {
	configFile := writeConfig(t, `
presence:
  session_timeout_minutes: 30
storage:
  retention_days: 30
`)

	mgr, err := NewManager(configFile)
	require.NoError(t, err)

	assert.Equal(t, 30, mgr.Get("presence.session_timeout_minutes"))
	assert.Equal(t, 30, mgr.Get("storage.retention_days"))
	assert.Equal(t, "monday", mgr.Get("presence.week_start"))
}

func TestManager_Get_ReturnsDefaults(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"storage.retention_days", 365},
		{"presence.session_timeout_minutes", 15},
		{"presence.lookback_hours", 24},
		{"presence.week_start", "monday"},
		{"presence.detail_days", 14},
		{"presence.overview_days", 30},
		{"presence.workers", 8},
		{"display.colors", "auto"},
		{"display.timezone", "local"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, mgr.Get(tt.key))
		})
	}
}

func TestManager_Set_Persists(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nested", "config.yaml")

	mgr, err := NewManager(configFile)
	require.NoError(t, err)

	require.NoError(t, mgr.Set("presence.workers", 4))
	require.NoError(t, mgr.Set("display.timezone", "utc"))

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	presence, ok := saved["presence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4, presence["workers"])

	reloaded, err := NewManager(configFile)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Get("presence.workers"))
	assert.Equal(t, "utc", reloaded.Get("display.timezone"))

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Presence.Workers)
}

func TestManager_Set_RejectsInvalid(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	mgr, err := NewManager(configFile)
	require.NoError(t, err)

	err = mgr.Set("presence.lookback_hours", 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookback_hours")
	assert.Equal(t, 24, mgr.Get("presence.lookback_hours"))

	err = mgr.Set("no.such.key", 1)
	require.Error(t, err)

	_, statErr := os.Stat(configFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestManager_Reset(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	mgr, err := NewManager(configFile)
	require.NoError(t, err)
	require.NoError(t, mgr.Set("presence.workers", 2))

	require.NoError(t, mgr.Reset())

	_, statErr := os.Stat(configFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 8, mgr.Get("presence.workers"))

	require.NoError(t, mgr.Reset())
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"true", true},
		{"FALSE", false},
		{"42", 42},
		{"-3", -3},
		{"monday", "monday"},
		{"Europe/Berlin", "Europe/Berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseValue(tt.input))
		})
	}
}

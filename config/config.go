// Package config provides configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/safedep/presence/core/window"
	"github.com/spf13/viper"
)

// ColorMode represents the color output mode.
type ColorMode string

const (
	// ColorAuto automatically detects terminal support.
	ColorAuto ColorMode = "auto"
	// ColorAlways always uses colors.
	ColorAlways ColorMode = "always"
	// ColorNever never uses colors.
	ColorNever ColorMode = "never"
)

// Timezone values with special meaning. Any other value must be an IANA
// location name such as "Europe/Berlin".
const (
	// TimezoneLocal uses the local timezone.
	TimezoneLocal = "local"
	// TimezoneUTC uses UTC.
	TimezoneUTC = "utc"
)

// Config holds all configuration values.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Presence PresenceConfig `mapstructure:"presence"`
	Display  DisplayConfig  `mapstructure:"display"`
}

// StorageConfig holds storage-related settings.
type StorageConfig struct {
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// PresenceConfig holds session reconstruction and reporting settings.
type PresenceConfig struct {
	// SessionTimeoutMinutes is used until a timeout is stored with
	// `presence policy set`.
	SessionTimeoutMinutes int    `mapstructure:"session_timeout_minutes"`
	LookbackHours         int    `mapstructure:"lookback_hours"`
	WeekStart             string `mapstructure:"week_start"`
	DetailDays            int    `mapstructure:"detail_days"`
	OverviewDays          int    `mapstructure:"overview_days"`
	Workers               int    `mapstructure:"workers"`
}

// DisplayConfig holds display-related settings.
type DisplayConfig struct {
	Colors   ColorMode `mapstructure:"colors"`
	Timezone string    `mapstructure:"timezone"`
}

// Paths holds resolved filesystem paths.
type Paths struct {
	ConfigFile   string
	ConfigDir    string
	DataDir      string
	DatabaseFile string
}

// Load loads configuration from the given path or default locations.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		paths := ResolvePaths()

		v.SetConfigName("config")
		v.AddConfigPath(paths.ConfigDir)
	}

	// PRESENCE_PRESENCE_WORKERS overrides presence.workers
	v.SetEnvPrefix("PRESENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath == "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with all default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// ResolvePaths returns the resolved filesystem paths for the current platform.
func ResolvePaths() *Paths {
	configDir := getConfigDir()
	dataDir := getDataDir()

	return &Paths{
		ConfigFile:   filepath.Join(configDir, "config.yaml"),
		ConfigDir:    configDir,
		DataDir:      dataDir,
		DatabaseFile: filepath.Join(dataDir, "presence.db"),
	}
}

// GetDatabasePath returns the resolved database path from config or default.
func (c *Config) GetDatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	paths := ResolvePaths()
	return paths.DatabaseFile
}

// ShouldUseColors returns true if colors should be used based on config and terminal.
func (c *Config) ShouldUseColors() bool {
	switch c.Display.Colors {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		fileInfo, err := os.Stdout.Stat()
		if err != nil {
			return false
		}
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
}

// Location returns the time zone reports are bucketed and displayed in.
// Validation guarantees the zone loads.
func (c *Config) Location() *time.Location {
	loc, err := loadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Lookback returns how far before a window events are fetched.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.Presence.LookbackHours) * time.Hour
}

// Calendar returns the reporting calendar.
func (c *Config) Calendar() window.Calendar {
	weekStart, err := window.ParseWeekday(c.Presence.WeekStart)
	if err != nil {
		weekStart = time.Monday
	}
	return window.NewCalendar(c.Location(), weekStart)
}

func loadLocation(tz string) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(tz)) {
	case "", TimezoneLocal:
		return time.Local, nil
	case TimezoneUTC:
		return time.UTC, nil
	default:
		return time.LoadLocation(tz)
	}
}

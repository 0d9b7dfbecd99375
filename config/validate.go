package config

import (
	"fmt"

	"github.com/safedep/presence/core/window"
)

// minLookbackHours keeps a full day of history in front of every window.
const minLookbackHours = 24

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.Storage.RetentionDays < 0 {
		return fmt.Errorf("storage.retention_days must be non-negative")
	}

	if cfg.Presence.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("presence.session_timeout_minutes must be positive, got %d",
			cfg.Presence.SessionTimeoutMinutes)
	}

	if cfg.Presence.LookbackHours < minLookbackHours {
		return fmt.Errorf("presence.lookback_hours must be at least %d, got %d",
			minLookbackHours, cfg.Presence.LookbackHours)
	}

	if cfg.Presence.SessionTimeoutMinutes > cfg.Presence.LookbackHours*60 {
		return fmt.Errorf("presence.session_timeout_minutes (%d) must not exceed the lookback (%d hours)",
			cfg.Presence.SessionTimeoutMinutes, cfg.Presence.LookbackHours)
	}

	if _, err := window.ParseWeekday(cfg.Presence.WeekStart); err != nil {
		return fmt.Errorf("invalid presence.week_start: %w", err)
	}

	if cfg.Presence.DetailDays < 0 {
		return fmt.Errorf("presence.detail_days must be non-negative")
	}
	if cfg.Presence.OverviewDays < 0 {
		return fmt.Errorf("presence.overview_days must be non-negative")
	}
	if cfg.Presence.Workers < 0 {
		return fmt.Errorf("presence.workers must be non-negative")
	}

	if !isValidColorMode(cfg.Display.Colors) {
		return fmt.Errorf("invalid display.colors: %s (must be auto, always, or never)", cfg.Display.Colors)
	}

	if _, err := loadLocation(cfg.Display.Timezone); err != nil {
		return fmt.Errorf("invalid display.timezone: %s (must be local, utc, or an IANA zone): %w",
			cfg.Display.Timezone, err)
	}

	return nil
}

// isValidColorMode returns true if the given mode is valid.
func isValidColorMode(mode ColorMode) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

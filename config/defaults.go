package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Storage defaults
	v.SetDefault("storage.path", "") // Empty means use platform default
	v.SetDefault("storage.retention_days", 365)

	// Presence defaults
	v.SetDefault("presence.session_timeout_minutes", 15)
	v.SetDefault("presence.lookback_hours", 24)
	v.SetDefault("presence.week_start", "monday")
	v.SetDefault("presence.detail_days", 14)
	v.SetDefault("presence.overview_days", 30)
	v.SetDefault("presence.workers", 8)

	// Display defaults
	v.SetDefault("display.colors", "auto")
	v.SetDefault("display.timezone", "local")
}

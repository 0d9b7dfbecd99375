// Package retention decides which raw presence events may be pruned.
package retention

import (
	"time"

	"github.com/safedep/presence/core/window"
)

// Policy defines the data retention settings.
type Policy struct {
	// RetentionDays is the number of days to keep events (0 = never delete).
	RetentionDays int
	// Lookback is the history the reports need before any window. The
	// cutoff is never later than now - Lookback.
	Lookback time.Duration
}

// NewPolicy creates a Policy with the given retention days and the default
// lookback.
func NewPolicy(days int) *Policy {
	return &Policy{
		RetentionDays: days,
		Lookback:      window.DefaultLookback,
	}
}

// IsEnabled returns true if retention is enabled.
func (p *Policy) IsEnabled() bool {
	return p.RetentionDays > 0
}

// CutoffAt returns the instant before which events should be deleted when
// evaluated at now. Returns zero time if retention is disabled.
func (p *Policy) CutoffAt(now time.Time) time.Time {
	if !p.IsEnabled() {
		return time.Time{}
	}

	cutoff := now.AddDate(0, 0, -p.RetentionDays)
	if latest := now.Add(-p.Lookback); cutoff.After(latest) {
		cutoff = latest
	}
	return cutoff
}

// ShouldDelete returns true if an event at eventTime should be deleted when
// evaluated at now.
func (p *Policy) ShouldDelete(eventTime, now time.Time) bool {
	if !p.IsEnabled() {
		return false
	}
	return eventTime.Before(p.CutoffAt(now))
}

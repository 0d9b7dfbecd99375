package session

import (
	"time"

	"github.com/safedep/presence/core/events"
)

// CurrentStatus derives the presence state shown on every report.
//
// The person is IN_OFFICE when the latest session ended within the timeout
// of now, OUT_OF_OFFICE otherwise, and UNKNOWN when no event was found in
// the lookback window at all.
func CurrentStatus(result *Result, hadEvents bool, now time.Time, timeoutMinutes int) events.Status {
	if !hadEvents {
		return events.StatusUnknown
	}

	last := result.Last()
	if last == nil {
		return events.StatusOutOfOffice
	}

	if !last.End.Before(now.Add(-TimeoutDuration(timeoutMinutes))) {
		return events.StatusInOffice
	}
	return events.StatusOutOfOffice
}

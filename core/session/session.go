// Package session reconstructs presence sessions from an ordered stream of
// presence events.
package session

import (
	"time"
)

// Session is one contiguous interval during which a person is considered
// present. Sessions are derived on every call and never persisted.
type Session struct {
	// Start is the first instant of presence.
	Start time.Time `json:"start"`
	// End is the last instant of presence. End is never before Start.
	End time.Time `json:"end"`
	// DurationMinutes is End - Start in fractional minutes.
	DurationMinutes float64 `json:"duration_minutes"`
}

// New creates a Session for [start, end].
func New(start, end time.Time) Session {
	return Session{
		Start:           start,
		End:             end,
		DurationMinutes: minutesBetween(start, end),
	}
}

// Duration returns the session length.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsZeroLength returns true for a single-ping session.
func (s Session) IsZeroLength() bool {
	return s.End.Equal(s.Start)
}

// Result is the output of a reconstruction.
type Result struct {
	// Sessions are ordered by strictly increasing start and never overlap.
	Sessions []Session `json:"sessions"`
	// TotalDurationMinutes is the sum of every session duration.
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
}

// Last returns the most recent session, or nil if there is none.
func (r *Result) Last() *Session {
	if r == nil || len(r.Sessions) == 0 {
		return nil
	}
	return &r.Sessions[len(r.Sessions)-1]
}

// Count returns the number of sessions, i.e. the number of visits.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Sessions)
}

// TimeoutDuration converts a timeout policy in minutes to a duration.
func TimeoutDuration(timeoutMinutes int) time.Duration {
	return time.Duration(timeoutMinutes) * time.Minute
}

func minutesBetween(start, end time.Time) float64 {
	return float64(end.Sub(start)) / float64(time.Minute)
}

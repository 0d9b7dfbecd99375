// Package window clips reconstructed sessions to reporting windows and sums
// their durations.
package window

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/safedep/presence/core/session"
)

// ErrInvalidWindow is returned when a window ends before it starts.
var ErrInvalidWindow = errors.New("window end is before window start")

// Window is a closed reporting interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// New creates a Window, rejecting an end before the start.
func New(start, end time.Time) (Window, error) {
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: [%s, %s]", ErrInvalidWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Window{Start: start, End: end}, nil
}

// IsEmpty returns true for a zero-length window.
func (w Window) IsEmpty() bool {
	return !w.End.After(w.Start)
}

// Contains returns true if t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Clip intersects every session with [start, end].
//
// Sessions disjoint from the window, or only touching one of its edges, are
// dropped. Partially overlapping sessions are truncated at the edges. A
// zero-length session is kept when it lies in [start, end], so a ping at
// exactly end still counts as a visit. Relative order is preserved.
func Clip(sessions []session.Session, start, end time.Time) ([]session.Session, error) {
	w, err := New(start, end)
	if err != nil {
		return nil, err
	}
	return w.Clip(sessions), nil
}

// Clip intersects every session with the window. See Clip.
func (w Window) Clip(sessions []session.Session) []session.Session {
	clipped := []session.Session{}
	if w.IsEmpty() {
		return clipped
	}

	for _, s := range sessions {
		if s.IsZeroLength() {
			if w.Contains(s.Start) {
				clipped = append(clipped, s)
			}
			continue
		}

		start := s.Start
		if start.Before(w.Start) {
			start = w.Start
		}
		end := s.End
		if end.After(w.End) {
			end = w.End
		}
		if !end.After(start) {
			continue
		}

		clipped = append(clipped, session.New(start, end))
	}

	return clipped
}

// SumDurationMinutes returns the exact sum of End - Start over the sessions
// in fractional minutes.
func SumDurationMinutes(sessions []session.Session) float64 {
	var total time.Duration
	for _, s := range sessions {
		total += s.End.Sub(s.Start)
	}
	return float64(total) / float64(time.Minute)
}

// ClippedMinutes clips the sessions to [start, end] and sums the result.
func ClippedMinutes(sessions []session.Session, start, end time.Time) (float64, error) {
	clipped, err := Clip(sessions, start, end)
	if err != nil {
		return 0, err
	}
	return SumDurationMinutes(clipped), nil
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundHours converts minutes to hours rounded to one decimal place.
func RoundHours(minutes float64) float64 {
	return RoundTenth(minutes / 60)
}

package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/safedep/presence/core/events"
)

// Reconstruct turns an ascending sequence of presence events into sessions.
//
// An IN_OFFICE ping opens a session or extends the open one when the gap
// since the previous IN_OFFICE ping is at most timeoutMinutes. A longer gap
// closes the open session at that previous ping and opens a new one. An
// OUT_OF_OFFICE ping closes the open session at its own timestamp, even when
// the timeout had already elapsed. Pings sharing a timestamp are applied
// OUT_OF_OFFICE first. A session still open after the last event ends at
// min(now, lastPing+timeout).
//
// The events slice is never modified.
func Reconstruct(evts []*events.Event, now time.Time, timeoutMinutes int) (*Result, error) {
	if timeoutMinutes <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %d minutes",
			ErrInvalidPolicy, timeoutMinutes)
	}

	if err := validate(evts, now); err != nil {
		return nil, err
	}

	timeout := TimeoutDuration(timeoutMinutes)
	result := &Result{Sessions: []Session{}}

	var (
		open   bool
		start  time.Time
		lastIn time.Time
	)

	closeAt := func(end time.Time) {
		s := New(start, end)
		result.Sessions = append(result.Sessions, s)
		result.TotalDurationMinutes += s.DurationMinutes
		open = false
	}

	for _, e := range applyOrder(evts) {
		switch e.Status {
		case events.StatusInOffice:
			if open && e.Timestamp.Sub(lastIn) <= timeout {
				lastIn = e.Timestamp
				continue
			}
			if open {
				closeAt(lastIn)
			}
			open = true
			start = e.Timestamp
			lastIn = e.Timestamp

		case events.StatusOutOfOffice:
			if open {
				closeAt(e.Timestamp)
			}
		}
	}

	if open {
		end := lastIn.Add(timeout)
		if now.Before(end) {
			end = now
		}
		closeAt(end)
	}

	return result, nil
}

func validate(evts []*events.Event, now time.Time) error {
	for i, e := range evts {
		if e == nil {
			return fmt.Errorf("%w: nil event at index %d", ErrInvalidEvent, i)
		}
		if !e.Status.IsValid() {
			return fmt.Errorf("%w: status %q at index %d", ErrInvalidEvent, e.Status, i)
		}
		if i > 0 && e.Timestamp.Before(evts[i-1].Timestamp) {
			return fmt.Errorf("%w: event %d at %s precedes event %d at %s",
				ErrInvalidOrdering, i, e.Timestamp.Format(time.RFC3339Nano),
				i-1, evts[i-1].Timestamp.Format(time.RFC3339Nano))
		}
	}

	if n := len(evts); n > 0 && now.Before(evts[n-1].Timestamp) {
		return fmt.Errorf("%w: evaluation instant %s is before the last event at %s",
			ErrInvalidPolicy, now.Format(time.RFC3339Nano),
			evts[n-1].Timestamp.Format(time.RFC3339Nano))
	}

	return nil
}

// applyOrder returns a copy of the already ascending events in which pings
// with the same timestamp are arranged OUT_OF_OFFICE before IN_OFFICE.
func applyOrder(evts []*events.Event) []*events.Event {
	ordered := slices.Clone(evts)
	slices.SortStableFunc(ordered, func(a, b *events.Event) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return statusRank(a.Status) - statusRank(b.Status)
	})
	return ordered
}

func statusRank(s events.Status) int {
	if s == events.StatusOutOfOffice {
		return 0
	}
	return 1
}

// CheckOrder reports ErrInvalidOrdering or ErrInvalidEvent for a sequence
// that Reconstruct would reject, without reconstructing it.
func CheckOrder(evts []*events.Event) error {
	if len(evts) == 0 {
		return nil
	}
	last := evts[len(evts)-1]
	if last == nil {
		return fmt.Errorf("%w: nil event at index %d", ErrInvalidEvent, len(evts)-1)
	}
	return validate(evts, last.Timestamp)
}

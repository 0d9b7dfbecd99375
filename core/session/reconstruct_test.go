package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUser = uuid.MustParse("6f1d2b9e-3c4a-4d5e-8f90-123456789abc")
	testDay  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func at(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func in(ts time.Time) *events.Event {
	return &events.Event{ID: uuid.New(), UserID: testUser, Timestamp: ts, Status: events.StatusInOffice}
}

func out(ts time.Time) *events.Event {
	return &events.Event{ID: uuid.New(), UserID: testUser, Timestamp: ts, Status: events.StatusOutOfOffice}
}

func span(start, end time.Time) Session {
	return New(start, end)
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name      string
		events    []*events.Event
		now       time.Time
		timeout   int
		want      []Session
		wantTotal float64
	}{
		{
			name:      "no events",
			events:    nil,
			now:       at(12, 0),
			timeout:   15,
			want:      []Session{},
			wantTotal: 0,
		},
		{
			name:      "ongoing session runs through now",
			events:    []*events.Event{in(at(9, 0)), in(at(9, 10))},
			now:       at(9, 10),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 10))},
			wantTotal: 10,
		},
		{
			name:      "stale session closes at last ping plus timeout",
			events:    []*events.Event{in(at(9, 0)), in(at(9, 10))},
			now:       at(10, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 25))},
			wantTotal: 25,
		},
		{
			name:      "explicit closure then reopen at the same instant",
			events:    []*events.Event{in(at(9, 0)), out(at(9, 5)), in(at(9, 5))},
			now:       at(9, 5),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 5)), span(at(9, 5), at(9, 5))},
			wantTotal: 5,
		},
		{
			name:      "explicit closure wins over an elapsed timeout",
			events:    []*events.Event{in(at(9, 0)), out(at(11, 0))},
			now:       at(12, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(11, 0))},
			wantTotal: 120,
		},
		{
			name:      "gap equal to timeout keeps the session open",
			events:    []*events.Event{in(at(9, 0)), in(at(9, 15)), out(at(9, 20))},
			now:       at(10, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 20))},
			wantTotal: 20,
		},
		{
			name: "gap just over timeout splits and leaves a zero length visit",
			events: []*events.Event{
				in(at(9, 0)),
				in(at(9, 15).Add(time.Millisecond)),
				out(at(9, 30)),
			},
			now:     at(10, 0),
			timeout: 15,
			want: []Session{
				span(at(9, 0), at(9, 0)),
				span(at(9, 15).Add(time.Millisecond), at(9, 30)),
			},
			wantTotal: minutesBetween(at(9, 15).Add(time.Millisecond), at(9, 30)),
		},
		{
			name:      "out of office without an open session is ignored",
			events:    []*events.Event{out(at(8, 0)), in(at(9, 0)), out(at(9, 30)), out(at(9, 45))},
			now:       at(10, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 30))},
			wantTotal: 30,
		},
		{
			name:      "duplicate timestamps of mixed status close first",
			events:    []*events.Event{in(at(9, 0)), in(at(9, 10)), in(at(9, 20)), out(at(9, 20))},
			now:       at(9, 30),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 20)), span(at(9, 20), at(9, 30))},
			wantTotal: 30,
		},
		{
			name:      "single ping with a stale now is bounded by the timeout",
			events:    []*events.Event{in(at(9, 0))},
			now:       at(18, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 15))},
			wantTotal: 15,
		},
		{
			name:      "single ping evaluated at its own instant",
			events:    []*events.Event{in(at(9, 0))},
			now:       at(9, 0),
			timeout:   15,
			want:      []Session{span(at(9, 0), at(9, 0))},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconstruct(tt.events, tt.now, tt.timeout)
			require.NoError(t, err)
			require.NotNil(t, res)

			assert.Equal(t, tt.want, res.Sessions)
			assert.InDelta(t, tt.wantTotal, res.TotalDurationMinutes, 1e-9)
		})
	}
}

func TestReconstruct_FractionalMinutes(t *testing.T) {
	evts := []*events.Event{in(at(9, 0)), out(at(9, 0).Add(90 * time.Second))}

	res, err := Reconstruct(evts, at(10, 0), 15)
	require.NoError(t, err)

	require.Len(t, res.Sessions, 1)
	assert.Equal(t, 1.5, res.Sessions[0].DurationMinutes)
	assert.Equal(t, 1.5, res.TotalDurationMinutes)
}

func TestReconstruct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		events  []*events.Event
		now     time.Time
		timeout int
		wantErr error
	}{
		{
			name:    "zero timeout",
			events:  []*events.Event{in(at(9, 0))},
			now:     at(10, 0),
			timeout: 0,
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "negative timeout",
			events:  nil,
			now:     at(10, 0),
			timeout: -5,
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "descending events",
			events:  []*events.Event{in(at(9, 10)), in(at(9, 0))},
			now:     at(10, 0),
			timeout: 15,
			wantErr: ErrInvalidOrdering,
		},
		{
			name:    "now before last event",
			events:  []*events.Event{in(at(9, 0)), out(at(9, 30))},
			now:     at(9, 29),
			timeout: 15,
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "nil event",
			events:  []*events.Event{in(at(9, 0)), nil},
			now:     at(10, 0),
			timeout: 15,
			wantErr: ErrInvalidEvent,
		},
		{
			name: "unknown status",
			events: []*events.Event{
				{ID: uuid.New(), UserID: testUser, Timestamp: at(9, 0), Status: events.StatusUnknown},
			},
			now:     at(10, 0),
			timeout: 15,
			wantErr: ErrInvalidEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconstruct(tt.events, tt.now, tt.timeout)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestReconstruct_Idempotent(t *testing.T) {
	evts := []*events.Event{in(at(9, 0)), in(at(9, 10)), out(at(9, 10)), in(at(13, 0))}

	first, err := Reconstruct(evts, at(17, 0), 15)
	require.NoError(t, err)
	second, err := Reconstruct(evts, at(17, 0), 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	first := in(at(9, 0))
	second := out(at(9, 0))
	evts := []*events.Event{first, second}

	_, err := Reconstruct(evts, at(10, 0), 15)
	require.NoError(t, err)

	assert.Same(t, first, evts[0])
	assert.Same(t, second, evts[1])
	assert.Equal(t, events.StatusInOffice, evts[0].Status)
}

func TestReconstruct_OrderingInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 200; run++ {
		var evts []*events.Event
		ts := at(6, 0)
		n := rng.IntN(40)
		for i := 0; i < n; i++ {
			ts = ts.Add(time.Duration(rng.IntN(40)) * time.Minute)
			if rng.IntN(4) == 0 {
				evts = append(evts, out(ts))
			} else {
				evts = append(evts, in(ts))
			}
		}
		now := ts.Add(time.Duration(rng.IntN(120)) * time.Minute)
		timeout := 1 + rng.IntN(30)

		res, err := Reconstruct(evts, now, timeout)
		require.NoError(t, err)

		var total float64
		for i, s := range res.Sessions {
			assert.False(t, s.End.Before(s.Start), "run %d: session %d ends before it starts", run, i)
			assert.InDelta(t, s.End.Sub(s.Start).Minutes(), s.DurationMinutes, 1e-9)
			assert.False(t, s.End.After(now), "run %d: session %d ends after now", run, i)
			if i > 0 {
				prev := res.Sessions[i-1]
				assert.True(t, s.Start.After(prev.Start), "run %d: starts not strictly increasing", run)
				assert.False(t, s.Start.Before(prev.End), "run %d: sessions %d and %d overlap", run, i-1, i)
			}
			total += s.DurationMinutes
		}
		assert.InDelta(t, total, res.TotalDurationMinutes, 1e-6)
	}
}

func TestResult_Last(t *testing.T) {
	var nilResult *Result
	assert.Nil(t, nilResult.Last())
	assert.Equal(t, 0, nilResult.Count())

	res := &Result{Sessions: []Session{span(at(9, 0), at(9, 5)), span(at(10, 0), at(10, 5))}}
	require.NotNil(t, res.Last())
	assert.Equal(t, at(10, 0), res.Last().Start)
	assert.Equal(t, 2, res.Count())
}

package window

import (
	"testing"
	"time"

	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func span(start, end time.Time) session.Session {
	return session.New(start, end)
}

func TestClip(t *testing.T) {
	tests := []struct {
		name     string
		sessions []session.Session
		start    time.Time
		end      time.Time
		want     []session.Session
	}{
		{
			name:     "truncates both edges",
			sessions: []session.Session{span(at(8, 0), at(10, 0))},
			start:    at(9, 0),
			end:      at(9, 30),
			want:     []session.Session{span(at(9, 0), at(9, 30))},
		},
		{
			name:     "raises start only",
			sessions: []session.Session{span(at(8, 0), at(9, 15))},
			start:    at(9, 0),
			end:      at(12, 0),
			want:     []session.Session{span(at(9, 0), at(9, 15))},
		},
		{
			name:     "lowers end only",
			sessions: []session.Session{span(at(11, 30), at(13, 0))},
			start:    at(9, 0),
			end:      at(12, 0),
			want:     []session.Session{span(at(11, 30), at(12, 0))},
		},
		{
			name: "drops disjoint sessions and keeps order",
			sessions: []session.Session{
				span(at(6, 0), at(7, 0)),
				span(at(9, 0), at(9, 30)),
				span(at(14, 0), at(14, 10)),
				span(at(20, 0), at(21, 0)),
			},
			start: at(8, 0),
			end:   at(18, 0),
			want: []session.Session{
				span(at(9, 0), at(9, 30)),
				span(at(14, 0), at(14, 10)),
			},
		},
		{
			name:     "drops sessions touching an edge",
			sessions: []session.Session{span(at(8, 0), at(9, 0)), span(at(12, 0), at(13, 0))},
			start:    at(9, 0),
			end:      at(12, 0),
			want:     []session.Session{},
		},
		{
			name:     "keeps zero length visits on both edges",
			sessions: []session.Session{span(at(9, 0), at(9, 0)), span(at(12, 0), at(12, 0))},
			start:    at(9, 0),
			end:      at(12, 0),
			want:     []session.Session{span(at(9, 0), at(9, 0)), span(at(12, 0), at(12, 0))},
		},
		{
			name:     "drops zero length visit outside the window",
			sessions: []session.Session{span(at(8, 59), at(8, 59)), span(at(12, 1), at(12, 1))},
			start:    at(9, 0),
			end:      at(12, 0),
			want:     []session.Session{},
		},
		{
			name:     "zero length window",
			sessions: []session.Session{span(at(8, 0), at(10, 0))},
			start:    at(9, 0),
			end:      at(9, 0),
			want:     []session.Session{},
		},
		{
			name:     "no sessions",
			sessions: nil,
			start:    at(9, 0),
			end:      at(10, 0),
			want:     []session.Session{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clip(tt.sessions, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClip_TruncationDuration(t *testing.T) {
	got, err := Clip([]session.Session{span(at(8, 0), at(10, 0))}, at(9, 0), at(9, 30))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 30.0, got[0].DurationMinutes)
}

func TestClip_InvalidWindow(t *testing.T) {
	got, err := Clip([]session.Session{span(at(8, 0), at(10, 0))}, at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.Nil(t, got)

	_, err = ClippedMinutes(nil, at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestClip_PingAtWindowEnd(t *testing.T) {
	evts := []*events.Event{ping(at(9, 0), events.StatusInOffice)}

	res, err := session.Reconstruct(evts, at(9, 0), 15)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)

	clipped, err := Clip(res.Sessions, at(8, 0), at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, []session.Session{span(at(9, 0), at(9, 0))}, clipped)
}

func TestSumDurationMinutes(t *testing.T) {
	assert.Equal(t, 0.0, SumDurationMinutes(nil))
	assert.Equal(t, 40.0, SumDurationMinutes([]session.Session{
		span(at(9, 0), at(9, 30)),
		span(at(14, 0), at(14, 10)),
	}))
	assert.Equal(t, 0.5, SumDurationMinutes([]session.Session{
		span(at(9, 0), at(9, 0).Add(30*time.Second)),
	}))
}

func TestClippedMinutes(t *testing.T) {
	sessions := []session.Session{span(at(8, 0), at(10, 0)), span(at(14, 0), at(14, 10))}

	got, err := ClippedMinutes(sessions, at(9, 0), at(14, 5))
	require.NoError(t, err)
	assert.Equal(t, 65.0, got)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.6, RoundHours(95))
	assert.Equal(t, 0.0, RoundHours(2))
	assert.Equal(t, 0.1, RoundHours(3))
	assert.Equal(t, 8.0, RoundHours(480))
	assert.Equal(t, 12.3, RoundTenth(12.34))
	assert.Equal(t, 12.4, RoundTenth(12.36))
}

func TestWindow(t *testing.T) {
	w, err := New(at(9, 0), at(10, 0))
	require.NoError(t, err)

	assert.False(t, w.IsEmpty())
	assert.True(t, w.Contains(at(9, 0)))
	assert.True(t, w.Contains(at(9, 59)))
	assert.True(t, w.Contains(at(10, 0)))
	assert.False(t, w.Contains(at(10, 1)))

	_, err = New(at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

// Package report builds the read-only attendance reports (employee detail,
// roster and population overview) on top of session reconstruction and
// window clipping.
//
// Every report captures the evaluation instant exactly once and threads it
// through all of its sub-computations. Events are always fetched with a
// lookback pad before the earliest window so that sessions which began
// before a window are reconstructed in full before being clipped.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/session"
	"github.com/safedep/presence/core/window"
)

const (
	// DefaultWorkers bounds the per-user fan-out of population reports.
	DefaultWorkers = 8

	// MinDetailDays and MaxDetailDays bound the detail chart.
	MinDetailDays     = 1
	MaxDetailDays     = 90
	DefaultDetailDays = 14

	// MinOverviewDays and MaxOverviewDays bound the overview chart.
	MinOverviewDays     = 7
	MaxOverviewDays     = 90
	DefaultOverviewDays = 30
)

var (
	// ErrDataUnavailable wraps any failure that prevents a report from being
	// computed. Reports never return partial results.
	ErrDataUnavailable = errors.New("presence data unavailable")

	// ErrUserNotFound is returned when the requested user does not exist or
	// was deleted.
	ErrUserNotFound = errors.New("user not found")
)

// EventSource yields ascending presence events.
type EventSource interface {
	// EventsForUser returns the events of one user with from <= ts <= to.
	EventsForUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*events.Event, error)

	// EventsForUsers returns the events of several users with
	// from <= ts <= to, grouped by user.
	EventsForUsers(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]*events.Event, error)
}

// UserSource looks up tracked users.
type UserSource interface {
	// GetUser returns the user, or nil if it does not exist.
	GetUser(ctx context.Context, id uuid.UUID) (*events.User, error)

	// ListUsers returns users matching the filter ordered by name.
	ListUsers(ctx context.Context, filter *events.UserFilter) ([]*events.User, error)
}

// PolicySource supplies the tenant-wide inactivity timeout.
type PolicySource interface {
	SessionTimeoutMinutes(ctx context.Context) (int, error)
}

// Source combines everything a report reads.
type Source interface {
	EventSource
	UserSource
	PolicySource
}

// Clock returns the evaluation instant of a report.
type Clock func() time.Time

// Options configures a Reporter.
type Options struct {
	Source   Source
	Calendar window.Calendar
	Lookback time.Duration
	Clock    Clock
	Workers  int
}

// Reporter computes reports.
type Reporter struct {
	source   Source
	calendar window.Calendar
	lookback time.Duration
	clock    Clock
	workers  int
}

// New creates a Reporter, filling unset options with defaults.
func New(opts Options) *Reporter {
	r := &Reporter{
		source:   opts.Source,
		calendar: opts.Calendar,
		lookback: opts.Lookback,
		clock:    opts.Clock,
		workers:  opts.Workers,
	}
	if r.calendar.Location == nil {
		r.calendar = window.NewCalendar(time.Local, time.Monday)
	}
	if r.lookback <= 0 {
		r.lookback = window.DefaultLookback
	}
	if r.clock == nil {
		r.clock = time.Now
	}
	if r.workers <= 0 {
		r.workers = DefaultWorkers
	}
	return r
}

// Calendar returns the calendar reports are bucketed with.
func (r *Reporter) Calendar() window.Calendar {
	return r.calendar
}

// DayHours is one point of an hours-per-day chart.
type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ClampDays applies a default to a non-positive value and bounds it to
// [lo, hi].
func ClampDays(days, lo, hi, def int) int {
	if days <= 0 {
		days = def
	}
	if days < lo {
		return lo
	}
	if days > hi {
		return hi
	}
	return days
}

// evaluation is the fixed context of one report.
type evaluation struct {
	now        time.Time
	timeout    int
	todayStart time.Time
	weekStart  time.Time
	monthStart time.Time
}

// begin loads the policy and fixes the evaluation instant, which is at when
// set and the reporter clock otherwise.
func (r *Reporter) begin(ctx context.Context, at time.Time) (*evaluation, error) {
	timeout, err := r.source.SessionTimeoutMinutes(ctx)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to load timeout policy: %w", err))
	}
	if timeout <= 0 {
		return nil, unavailable(fmt.Errorf("%w: timeout must be positive, got %d minutes",
			session.ErrInvalidPolicy, timeout))
	}

	now := at
	if now.IsZero() {
		now = r.clock()
	}
	return &evaluation{
		now:        now,
		timeout:    timeout,
		todayStart: r.calendar.StartOfDay(now),
		weekStart:  r.calendar.StartOfWeek(now),
		monthStart: r.calendar.StartOfMonth(now),
	}, nil
}

// personal is the per-user part shared by every report.
type personal struct {
	result         *session.Result
	status         events.Status
	lastSeen       *time.Time
	todayMinutes   float64
	weekMinutes    float64
	lastSeenStatus events.Status
}

// evaluate reconstructs all of a user's fetched events at now and derives
// status with today's and this week's totals from them. evts must reach back
// to the start of the week minus the lookback.
func (r *Reporter) evaluate(ev *evaluation, evts []*events.Event) (*personal, error) {
	res, err := session.Reconstruct(evts, ev.now, ev.timeout)
	if err != nil {
		return nil, err
	}

	p := &personal{result: res}

	statusFrom := window.PaddedStart(ev.todayStart, r.lookback)
	hadEvents := len(evts) > 0 && !evts[len(evts)-1].Timestamp.Before(statusFrom)
	p.status = session.CurrentStatus(res, hadEvents, ev.now, ev.timeout)

	if n := len(evts); n > 0 {
		last := evts[n-1].Timestamp
		p.lastSeen = &last
		p.lastSeenStatus = evts[n-1].Status
	}

	for _, c := range []struct {
		start time.Time
		dst   *float64
	}{
		{ev.todayStart, &p.todayMinutes},
		{ev.weekStart, &p.weekMinutes},
	} {
		m, err := window.ClippedMinutes(res.Sessions, c.start, ev.now)
		if err != nil {
			return nil, err
		}
		*c.dst = m
	}

	return p, nil
}

func chartHours(buckets []window.DayBucket) []DayHours {
	out := make([]DayHours, len(buckets))
	for i, b := range buckets {
		out[i] = DayHours{Date: b.Date, Hours: b.Hours()}
	}
	return out
}

func earliest(ts ...time.Time) time.Time {
	sorted := append([]time.Time(nil), ts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted[0]
}

// upTo returns the prefix of ascending events with ts <= t.
func upTo(evts []*events.Event, t time.Time) []*events.Event {
	n := sort.Search(len(evts), func(i int) bool {
		return evts[i].Timestamp.After(t)
	})
	return evts[:n]
}

// inRange returns the sub-slice of ascending events with start <= ts <= end.
func inRange(evts []*events.Event, start, end time.Time) []*events.Event {
	evts = upTo(evts, end)
	lo := sort.Search(len(evts), func(i int) bool {
		return !evts[i].Timestamp.Before(start)
	})
	return evts[lo:]
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}

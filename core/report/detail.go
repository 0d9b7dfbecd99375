package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/session"
	"github.com/safedep/presence/core/window"
)

// DetailOptions selects the range of an employee detail report.
type DetailOptions struct {
	// From and To select a custom range. Both must be set to take effect.
	From *time.Time
	To   *time.Time
	// Days is the length of the hours-per-day chart, and of the default
	// range when no custom range is given.
	Days int
	// At fixes the evaluation instant. The zero value uses the reporter
	// clock.
	At time.Time
}

// Summary holds the calendar totals of one person.
type Summary struct {
	TodayHours float64 `json:"today_hours"`
	WeekHours  float64 `json:"week_hours"`
	MonthHours float64 `json:"month_hours"`
}

// EmployeeDetail is the per-user detail report.
type EmployeeDetail struct {
	User                 *events.User      `json:"user"`
	GeneratedAt          time.Time         `json:"generated_at"`
	TimeoutMinutes       int               `json:"timeout_minutes"`
	Status               events.Status     `json:"status"`
	LastSeen             *time.Time        `json:"last_seen,omitempty"`
	Summary              Summary           `json:"summary"`
	RangeStart           time.Time         `json:"range_start"`
	RangeEnd             time.Time         `json:"range_end"`
	Sessions             []session.Session `json:"sessions"`
	TotalDurationMinutes float64           `json:"total_duration_minutes"`
	HoursPerDay          []DayHours        `json:"hours_per_day"`
	RawEvents            []*events.Event   `json:"raw_events"`
}

// EmployeeDetail computes the detail report of one user.
func (r *Reporter) EmployeeDetail(ctx context.Context, userID uuid.UUID, opts DetailOptions) (*EmployeeDetail, error) {
	user, err := r.source.GetUser(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	if user == nil || user.IsDeleted() {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	ev, err := r.begin(ctx, opts.At)
	if err != nil {
		return nil, err
	}

	days := ClampDays(opts.Days, MinDetailDays, MaxDetailDays, DefaultDetailDays)

	chartStart := r.calendar.DaysBack(ev.now, days-1)

	rangeStart, rangeEnd := r.calendar.DaysBack(ev.now, days), ev.now
	if opts.From != nil && opts.To != nil {
		if opts.To.Before(*opts.From) {
			return nil, fmt.Errorf("%w: range %s to %s", window.ErrInvalidWindow,
				opts.From.Format(time.RFC3339), opts.To.Format(time.RFC3339))
		}
		rangeStart, rangeEnd = *opts.From, *opts.To
	}

	fetchFrom := window.PaddedStart(
		earliest(ev.todayStart, ev.weekStart, ev.monthStart, chartStart, rangeStart), r.lookback)

	log.Debugf("employee detail %s: fetching events %s .. %s", userID,
		fetchFrom.Format(time.RFC3339), ev.now.Format(time.RFC3339))

	evts, err := r.source.EventsForUser(ctx, userID, fetchFrom, ev.now)
	if err != nil {
		return nil, unavailable(err)
	}

	p, err := r.evaluate(ev, evts)
	if err != nil {
		return nil, unavailable(err)
	}

	monthMinutes, err := window.ClippedMinutes(p.result.Sessions, ev.monthStart, ev.now)
	if err != nil {
		return nil, unavailable(err)
	}

	detail := &EmployeeDetail{
		User:           user,
		GeneratedAt:    ev.now,
		TimeoutMinutes: ev.timeout,
		Status:         p.status,
		LastSeen:       p.lastSeen,
		Summary: Summary{
			TodayHours: window.RoundHours(p.todayMinutes),
			WeekHours:  window.RoundHours(p.weekMinutes),
			MonthHours: window.RoundHours(monthMinutes),
		},
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Sessions:   []session.Session{},
		RawEvents:  []*events.Event{},
	}

	// A range reaching into the future is evaluated up to now.
	evalAt := rangeEnd
	if ev.now.Before(evalAt) {
		evalAt = ev.now
	}

	if !evalAt.Before(rangeStart) {
		rangeEvents := upTo(evts, evalAt)
		res, err := session.Reconstruct(rangeEvents, evalAt, ev.timeout)
		if err != nil {
			return nil, unavailable(err)
		}

		clipped, err := window.Clip(res.Sessions, rangeStart, evalAt)
		if err != nil {
			return nil, unavailable(err)
		}

		detail.Sessions = clipped
		detail.TotalDurationMinutes = window.SumDurationMinutes(clipped)
		detail.RawEvents = append(detail.RawEvents, inRange(evts, rangeStart, evalAt)...)
	}

	buckets, err := window.DailyMinutes(evts, days, ev.now, ev.timeout, r.calendar)
	if err != nil {
		return nil, unavailable(err)
	}
	detail.HoursPerDay = chartHours(buckets)

	return detail, nil
}

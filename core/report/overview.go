package report

import (
	"context"
	"fmt"
	"time"

	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/window"
	"golang.org/x/sync/errgroup"
)

// Overview is the population-level attendance report.
type Overview struct {
	GeneratedAt          time.Time  `json:"generated_at"`
	TimeoutMinutes       int        `json:"timeout_minutes"`
	Days                 int        `json:"days"`
	CurrentInOffice      int        `json:"current_in_office"`
	TotalHoursToday      float64    `json:"total_hours_today"`
	ActiveEmployeesCount int        `json:"active_employees_count"`
	AverageHoursToday    float64    `json:"average_hours_today"`
	HoursPerDay          []DayHours `json:"hours_per_day"`
}

// userTotals is the per-user contribution to an overview.
type userTotals struct {
	inOffice     bool
	todayMinutes float64
	buckets      []window.DayBucket
}

// Overview aggregates presence over every active, non-deleted user for the
// last days days.
func (r *Reporter) Overview(ctx context.Context, days int) (*Overview, error) {
	users, err := r.source.ListUsers(ctx, events.NewUserFilter().WithActiveOnly())
	if err != nil {
		return nil, unavailable(err)
	}

	ev, err := r.begin(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	days = ClampDays(days, MinOverviewDays, MaxOverviewDays, DefaultOverviewDays)
	chartStart := r.calendar.DaysBack(ev.now, days-1)

	overview := &Overview{
		GeneratedAt:          ev.now,
		TimeoutMinutes:       ev.timeout,
		Days:                 days,
		ActiveEmployeesCount: len(users),
		HoursPerDay:          make([]DayHours, 0, days),
	}

	fetchFrom := window.PaddedStart(earliest(chartStart, ev.todayStart), r.lookback)
	byUser, err := r.source.EventsForUsers(ctx, userIDs(users), fetchFrom, ev.now)
	if err != nil {
		return nil, unavailable(err)
	}

	log.Debugf("overview: evaluating %d users over %d days with %d workers",
		len(users), days, r.workers)

	totals := make([]userTotals, len(users))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, user := range users {
		g.Go(func() error {
			evts := byUser[user.ID]

			p, err := r.evaluate(ev, evts)
			if err != nil {
				return fmt.Errorf("user %s: %w", user.ID, err)
			}

			buckets, err := window.DailyMinutes(evts, days, ev.now, ev.timeout, r.calendar)
			if err != nil {
				return fmt.Errorf("user %s: %w", user.ID, err)
			}

			totals[i] = userTotals{
				inOffice:     p.status == events.StatusInOffice,
				todayMinutes: p.todayMinutes,
				buckets:      buckets,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, unavailable(err)
	}

	var todayMinutes float64
	perDay := make([]float64, days)
	for _, t := range totals {
		if t.inOffice {
			overview.CurrentInOffice++
		}
		todayMinutes += t.todayMinutes
		for d, b := range t.buckets {
			perDay[d] += b.Minutes
		}
	}

	overview.TotalHoursToday = window.RoundHours(todayMinutes)
	if len(users) > 0 {
		overview.AverageHoursToday = window.RoundHours(todayMinutes / float64(len(users)))
	}

	for d := range days {
		day := r.calendar.DaysBack(ev.now, days-1-d)
		overview.HoursPerDay = append(overview.HoursPerDay, DayHours{
			Date:  r.calendar.DateKey(day),
			Hours: window.RoundHours(perDay[d]),
		})
	}

	return overview, nil
}

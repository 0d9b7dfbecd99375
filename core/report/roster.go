package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/window"
	"golang.org/x/sync/errgroup"
)

// RosterEntry is one row of the employee roster.
type RosterEntry struct {
	User       *events.User  `json:"user"`
	Status     events.Status `json:"status"`
	LastSeen   *time.Time    `json:"last_seen,omitempty"`
	LastStatus events.Status `json:"last_status,omitempty"`
	TodayHours float64       `json:"today_hours"`
	WeekHours  float64       `json:"week_hours"`
}

// Roster is the status of every employee.
type Roster struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	TimeoutMinutes int            `json:"timeout_minutes"`
	Entries        []*RosterEntry `json:"entries"`
}

// InOffice counts the entries currently in office.
func (r *Roster) InOffice() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == events.StatusInOffice {
			n++
		}
	}
	return n
}

// Roster computes status, last seen, today's and this week's hours for every
// non-deleted employee. Entries keep the order of the user listing.
func (r *Reporter) Roster(ctx context.Context) (*Roster, error) {
	users, err := r.source.ListUsers(ctx, events.NewUserFilter().WithRole(events.RoleEmployee))
	if err != nil {
		return nil, unavailable(err)
	}

	ev, err := r.begin(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	roster := &Roster{
		GeneratedAt:    ev.now,
		TimeoutMinutes: ev.timeout,
		Entries:        make([]*RosterEntry, len(users)),
	}
	if len(users) == 0 {
		return roster, nil
	}

	fetchFrom := window.PaddedStart(earliest(ev.todayStart, ev.weekStart), r.lookback)
	byUser, err := r.source.EventsForUsers(ctx, userIDs(users), fetchFrom, ev.now)
	if err != nil {
		return nil, unavailable(err)
	}

	log.Debugf("roster: evaluating %d employees with %d workers", len(users), r.workers)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, user := range users {
		g.Go(func() error {
			p, err := r.evaluate(ev, byUser[user.ID])
			if err != nil {
				return fmt.Errorf("user %s: %w", user.ID, err)
			}

			roster.Entries[i] = &RosterEntry{
				User:       user,
				Status:     p.status,
				LastSeen:   p.lastSeen,
				LastStatus: p.lastSeenStatus,
				TodayHours: window.RoundHours(p.todayMinutes),
				WeekHours:  window.RoundHours(p.weekMinutes),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, unavailable(err)
	}

	return roster, nil
}

func userIDs(users []*events.User) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

package cli

import (
	"context"
	"time"

	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/report"
	"github.com/safedep/presence/core/session"
	"github.com/safedep/presence/core/window"
	"github.com/safedep/presence/storage"
	"github.com/safedep/presence/tui"
)

// resolveUser finds a non-deleted user by ID, ID prefix, email or name.
func resolveUser(ctx context.Context, store storage.UserStore, ref string) (*events.User, error) {
	user, err := store.FindUser(ctx, ref)
	if err != nil {
		return nil, storeError("failed to look up user", err)
	}
	if user == nil || user.IsDeleted() {
		return nil, ErrUserNotFound(ref)
	}
	return user, nil
}

// userToView converts a user to a view model.
func userToView(u *events.User) tui.UserView {
	return tui.UserView{
		ID:        u.ID.String(),
		ShortID:   tui.FormatShortID(u.ID.String()),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Active:    u.IsActive,
		CreatedAt: u.CreatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func usersToView(users []*events.User) []*tui.UserView {
	out := make([]*tui.UserView, len(users))
	for i, u := range users {
		v := userToView(u)
		out[i] = &v
	}
	return out
}

// sessionToView converts a session to a view model.
func sessionToView(s session.Session) *tui.SessionView {
	return &tui.SessionView{
		Start:           s.Start,
		End:             s.End,
		Duration:        s.Duration(),
		DurationMinutes: tui.RoundTenth(s.DurationMinutes),
	}
}

func sessionsToView(user *events.User, start, end time.Time, sessions []session.Session, totalMinutes float64) tui.SessionsView {
	views := make([]*tui.SessionView, len(sessions))
	for i, s := range sessions {
		views[i] = sessionToView(s)
	}
	return tui.SessionsView{
		User:         userToView(user),
		RangeStart:   start,
		RangeEnd:     end,
		Sessions:     views,
		TotalMinutes: tui.RoundTenth(totalMinutes),
		TotalHours:   window.RoundHours(totalMinutes),
	}
}

// eventToView converts a presence event to a view model.
func eventToView(e *events.Event, userName string) *tui.EventView {
	return &tui.EventView{
		ID:        e.ID.String(),
		ShortID:   tui.FormatShortID(e.ID.String()),
		UserName:  userName,
		Timestamp: e.Timestamp,
		Status:    e.Status.String(),
	}
}

func dayHoursToView(days []report.DayHours) []tui.DayHoursView {
	out := make([]tui.DayHoursView, len(days))
	for i, d := range days {
		out[i] = tui.DayHoursView{Date: d.Date, Hours: d.Hours}
	}
	return out
}

func detailToView(d *report.EmployeeDetail) *tui.EmployeeDetailView {
	evts := make([]*tui.EventView, len(d.RawEvents))
	for i, e := range d.RawEvents {
		evts[i] = eventToView(e, d.User.Name)
	}

	return &tui.EmployeeDetailView{
		SessionsView:   sessionsToView(d.User, d.RangeStart, d.RangeEnd, d.Sessions, d.TotalDurationMinutes),
		GeneratedAt:    d.GeneratedAt,
		TimeoutMinutes: d.TimeoutMinutes,
		Status:         d.Status.String(),
		LastSeen:       d.LastSeen,
		TodayHours:     d.Summary.TodayHours,
		WeekHours:      d.Summary.WeekHours,
		MonthHours:     d.Summary.MonthHours,
		HoursPerDay:    dayHoursToView(d.HoursPerDay),
		Events:         evts,
	}
}

func rosterToView(r *report.Roster) *tui.RosterView {
	rows := make([]*tui.EmployeeRowView, len(r.Entries))
	for i, e := range r.Entries {
		rows[i] = &tui.EmployeeRowView{
			User:       userToView(e.User),
			Status:     e.Status.String(),
			LastSeen:   e.LastSeen,
			TodayHours: e.TodayHours,
			WeekHours:  e.WeekHours,
		}
	}

	return &tui.RosterView{
		GeneratedAt:    r.GeneratedAt,
		TimeoutMinutes: r.TimeoutMinutes,
		InOffice:       r.InOffice(),
		Employees:      rows,
	}
}

func overviewToView(o *report.Overview) *tui.OverviewView {
	return &tui.OverviewView{
		GeneratedAt:       o.GeneratedAt,
		TimeoutMinutes:    o.TimeoutMinutes,
		Days:              o.Days,
		CurrentInOffice:   o.CurrentInOffice,
		ActiveEmployees:   o.ActiveEmployeesCount,
		TotalHoursToday:   o.TotalHoursToday,
		AverageHoursToday: o.AverageHoursToday,
		HoursPerDay:       dayHoursToView(o.HoursPerDay),
	}
}

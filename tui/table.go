package tui

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// TablePresenter renders output in table format.
type TablePresenter struct {
	w         io.Writer
	color     *Colorizer
	verbose   bool
	termWidth int
	loc       *time.Location
}

// NewTablePresenter creates a new table presenter.
func NewTablePresenter(opts PresenterOptions) *TablePresenter {
	termWidth := opts.TerminalWidth
	if termWidth == 0 {
		termWidth = WriterWidth(opts.Writer)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &TablePresenter{
		w:         opts.Writer,
		color:     NewColorizer(opts.UseColors),
		verbose:   opts.Verbose,
		termWidth: termWidth,
		loc:       loc,
	}
}

// local converts an instant to the display zone.
func (p *TablePresenter) local(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(p.loc)
}

func (p *TablePresenter) lastSeen(t *time.Time, now time.Time) string {
	if t == nil {
		return FormatLastSeen(nil, now)
	}
	lt := p.local(*t)
	return FormatLastSeen(&lt, now)
}

func (p *TablePresenter) out() *tableWriter {
	return &tableWriter{w: p.w}
}

// RenderStatus renders the tool status.
func (p *TablePresenter) RenderStatus(status *StatusView) error {
	tw := p.out()

	tw.printf("%s\n\n", p.color.Header("presence "+status.Version))

	tw.printf("%s\n", p.color.Header("Database"))
	tw.printf("  %-16s %s\n", "Location", p.color.Path(status.Database.Location))
	tw.printf("  %-16s %s\n", "Size", status.Database.SizeHuman)
	tw.printf("  %-16s %s\n", "Users", p.color.Number(FormatNumber(status.Database.UserCount)))
	tw.printf("  %-16s %s\n", "Events", p.color.Number(FormatNumber(status.Database.EventCount)))
	if !status.Database.OldestEvent.IsZero() {
		tw.printf("  %-16s %s\n", "Oldest", FormatTime(p.local(status.Database.OldestEvent)))
		tw.printf("  %-16s %s\n", "Latest", FormatTime(p.local(status.Database.NewestEvent)))
	}
	tw.println()

	tw.printf("%s\n", p.color.Header("Policy"))
	tw.printf("  %-16s %d minutes (%s)\n", "Session timeout", status.Policy.TimeoutMinutes, status.Policy.Source)
	tw.printf("  %-16s %d hours\n", "Lookback", status.Config.LookbackHours)
	tw.println()

	tw.printf("%s\n", p.color.Header("Config"))
	tw.printf("  %-16s %s\n", "Location", p.color.Path(status.Config.Location))
	tw.printf("  %-16s %s\n", "Timezone", status.Config.Timezone)
	tw.printf("  %-16s %s\n", "Week starts", status.Config.WeekStart)
	if status.Config.RetentionDays > 0 {
		tw.printf("  %-16s %d days (%s events before %s)\n", "Retention",
			status.Config.RetentionDays,
			FormatNumber(status.Config.EventsToClean),
			FormatDate(p.local(status.Config.RetentionCutoff)))
	} else {
		tw.printf("  %-16s %s\n", "Retention", "disabled")
	}

	return tw.Err()
}

// RenderUsers renders a list of tracked users.
func (p *TablePresenter) RenderUsers(users []*UserView) error {
	tw := p.out()

	if len(users) == 0 {
		tw.println("No users found.")
		return tw.Err()
	}

	tw.printf("Users (%d)\n", len(users))
	tw.println(HorizontalLine(p.termWidth))
	tw.printf("%-9s %-20s %-30s %-9s %s\n", "ID", "Name", "Email", "Role", "State")
	tw.println(HorizontalLine(p.termWidth))

	for _, u := range users {
		state := p.color.Success("active")
		switch {
		case u.DeletedAt != nil:
			state = p.color.Error("removed")
		case !u.Active:
			state = p.color.Dim("inactive")
		}

		tw.printf("%-9s %s %-30s %-9s %s\n",
			u.ShortID,
			p.color.Name(PadRight(TruncateString(u.Name, 20), 20)),
			TruncateString(u.Email, 30),
			u.Role,
			state)
	}

	return tw.Err()
}

// RenderRoster renders the employee roster.
func (p *TablePresenter) RenderRoster(roster *RosterView) error {
	tw := p.out()

	if len(roster.Employees) == 0 {
		tw.println("No employees found.")
		return tw.Err()
	}

	tw.printf("Employees (%d)  %s in office  %s\n",
		len(roster.Employees),
		p.color.Number(FormatNumber(roster.InOffice)),
		p.color.Dim(fmt.Sprintf("timeout %dm", roster.TimeoutMinutes)))
	tw.println(HorizontalLine(p.termWidth))
	tw.printf("%-20s %-10s %-20s %7s %7s\n", "Name", "Status", "Last seen", "Today", "Week")
	tw.println(HorizontalLine(p.termWidth))

	for _, e := range roster.Employees {
		tw.printf("%s %s %-20s %7s %7s\n",
			p.color.Name(PadRight(TruncateString(e.User.Name, 20), 20)),
			p.color.StatusPadded(e.Status, 10),
			p.lastSeen(e.LastSeen, roster.GeneratedAt),
			FormatHours(e.TodayHours),
			FormatHours(e.WeekHours))
	}

	return tw.Err()
}

// RenderEmployeeDetail renders the detail report of one user.
func (p *TablePresenter) RenderEmployeeDetail(d *EmployeeDetailView) error {
	tw := p.out()

	tw.section(p.color.Header(d.User.Name), p.termWidth)
	tw.field("Email", d.User.Email)
	tw.field("Status", p.color.Status(d.Status))
	tw.field("Last seen", p.lastSeen(d.LastSeen, d.GeneratedAt))
	tw.field("Today", p.color.Number(FormatHours(d.TodayHours)))
	tw.field("This week", p.color.Number(FormatHours(d.WeekHours)))
	tw.field("This month", p.color.Number(FormatHours(d.MonthHours)))
	tw.println()

	if len(d.HoursPerDay) > 0 {
		p.renderChart(tw, "Hours per day", d.HoursPerDay)
		tw.println()
	}

	p.renderSessionList(tw, &d.SessionsView)

	if p.verbose && len(d.Events) > 0 {
		tw.println()
		tw.printf("%s\n", p.color.Header(fmt.Sprintf("Events (%d)", len(d.Events))))
		for _, e := range d.Events {
			tw.printf("  %s  %s  %s\n", FormatTime(p.local(e.Timestamp)), p.color.Status(e.Status), p.color.Dim(e.ShortID))
		}
	}

	return tw.Err()
}

// RenderSessions renders the reconstructed sessions of one user.
func (p *TablePresenter) RenderSessions(s *SessionsView) error {
	tw := p.out()
	tw.printf("%s\n", p.color.Header(s.User.Name))
	p.renderSessionList(tw, s)
	return tw.Err()
}

func (p *TablePresenter) renderSessionList(tw *tableWriter, s *SessionsView) {
	tw.printf("Sessions %s .. %s\n", FormatTime(p.local(s.RangeStart)), FormatTime(p.local(s.RangeEnd)))
	tw.println(HorizontalLine(p.termWidth))

	if len(s.Sessions) == 0 {
		tw.println("No sessions found.")
		return
	}

	var day string
	for _, sess := range s.Sessions {
		if d := FormatDate(p.local(sess.Start)); d != day {
			day = d
			tw.printf("%s\n", p.color.Dim(day))
		}
		tw.printf("  %s - %s  %10s\n",
			FormatTimeShort(p.local(sess.Start)),
			FormatTimeShort(p.local(sess.End)),
			FormatDuration(sessionDuration(sess)))
	}

	tw.println(HorizontalLine(p.termWidth))
	tw.printf("%d sessions, %s total\n", len(s.Sessions), FormatHours(s.TotalHours))
}

// RenderEvent renders a single recorded event.
func (p *TablePresenter) RenderEvent(e *EventView) error {
	tw := p.out()
	tw.printf("Recorded %s for %s at %s (%s)\n",
		p.color.Status(e.Status), p.color.Name(e.UserName), FormatTime(p.local(e.Timestamp)), p.color.Dim(e.ShortID))
	return tw.Err()
}

// RenderOverview renders the population overview.
func (p *TablePresenter) RenderOverview(o *OverviewView) error {
	tw := p.out()

	tw.section(p.color.Header("Overview"), p.termWidth)
	tw.printf("%-22s %s\n", "In office now", p.color.Number(FormatNumber(o.CurrentInOffice)))
	tw.printf("%-22s %s\n", "Active employees", p.color.Number(FormatNumber(o.ActiveEmployees)))
	tw.printf("%-22s %s\n", "Total hours today", p.color.Number(FormatHours(o.TotalHoursToday)))
	tw.printf("%-22s %s\n", "Average hours today", p.color.Number(FormatHours(o.AverageHoursToday)))
	tw.println()

	p.renderChart(tw, fmt.Sprintf("Hours per day (last %d days)", o.Days), o.HoursPerDay)

	return tw.Err()
}

func (p *TablePresenter) renderChart(tw *tableWriter, title string, days []DayHoursView) {
	const labelWidth = 10 + 1 + 8 + 1

	tw.printf("%s\n", p.color.Header(title))

	barWidth := p.termWidth - labelWidth
	if barWidth < 10 {
		barWidth = 10
	}
	peak := MaxHours(days)

	for _, d := range days {
		tw.printf("%-10s %8s %s\n", d.Date, FormatHours(d.Hours),
			p.color.Success(Bar(d.Hours, peak, barWidth)))
	}
}

// RenderPolicy renders the inactivity timeout policy.
func (p *TablePresenter) RenderPolicy(policy *PolicyView) error {
	tw := p.out()
	tw.printf("%-16s %s minutes (%s)\n", "Session timeout",
		p.color.Number(fmt.Sprintf("%d", policy.TimeoutMinutes)), policy.Source)
	return tw.Err()
}

// RenderRetention renders retention status or cleanup results.
func (p *TablePresenter) RenderRetention(r *RetentionView) error {
	tw := p.out()

	if !r.Enabled {
		tw.println("Retention is disabled (retention_days = 0).")
		return tw.Err()
	}

	tw.printf("%-16s %d days\n", "Retention", r.RetentionDays)
	tw.field("Cutoff", FormatTime(p.local(r.Cutoff)))

	switch {
	case r.Cleaned:
		tw.field("Deleted", p.color.Number(FormatNumber(r.Deleted)))
	case r.DryRun:
		tw.printf("%-16s %s %s\n", "Would delete", p.color.Number(FormatNumber(r.EventsToClean)), p.color.Dim("(dry run)"))
	default:
		tw.field("Eligible", p.color.Number(FormatNumber(r.EventsToClean)))
	}

	return tw.Err()
}

// RenderDoctor renders the doctor check results.
func (p *TablePresenter) RenderDoctor(result *DoctorView) error {
	tw := p.out()

	tw.section(p.color.Header("Doctor"), p.termWidth)
	tw.println()

	for _, check := range result.Checks {
		var statusStr string
		switch check.Status {
		case CheckOK:
			statusStr = p.color.Success("[ok]")
		case CheckWarn:
			statusStr = p.color.Warning("[!!]")
		case CheckFail:
			statusStr = p.color.Error("[xx]")
		}

		tw.printf("  %s  %s\n", statusStr, check.Name)
		if check.Message != "" {
			tw.printf("        %s\n", check.Message)
		}
		if check.Suggestion != "" && check.Status != CheckOK {
			tw.printf("        %s\n", p.color.Dim(check.Suggestion))
		}
	}
	tw.println()

	if result.AllOK {
		tw.println(p.color.Success("All checks passed."))
	} else {
		tw.println(p.color.Warning("Some checks failed. See suggestions above."))
	}

	return tw.Err()
}

// RenderConfig renders the configuration.
func (p *TablePresenter) RenderConfig(config *ConfigView) error {
	tw := p.out()

	tw.printf("%s\n", p.color.Header("Configuration"))
	tw.printf("Location: %s\n", p.color.Path(config.Location))
	tw.println(HorizontalLine(p.termWidth))
	tw.println()

	p.renderConfigMap(tw, config.Values, "")

	return tw.Err()
}

func (p *TablePresenter) renderConfigMap(tw *tableWriter, m map[string]interface{}, prefix string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := m[key].(type) {
		case map[string]interface{}:
			p.renderConfigMap(tw, v, fullKey)
		default:
			tw.printf("  %-36s %v\n", fullKey, v)
		}
	}
}

// RenderError renders an error message.
func (p *TablePresenter) RenderError(err error) error {
	tw := p.out()
	tw.printf("%s %s\n", p.color.Error("Error:"), err.Error())
	return tw.Err()
}

// RenderMessage renders a simple message.
func (p *TablePresenter) RenderMessage(message string) error {
	tw := p.out()
	tw.println(message)
	return tw.Err()
}

// sessionDuration is the display duration of a session view.
func sessionDuration(s *SessionView) time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	return s.End.Sub(s.Start)
}

// Ensure TablePresenter implements Presenter
var _ Presenter = (*TablePresenter)(nil)

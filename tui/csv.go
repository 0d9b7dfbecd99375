package tui

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// CSVPresenter renders output as CSV.
type CSVPresenter struct {
	w      io.Writer
	writer *csv.Writer
}

// NewCSVPresenter creates a new CSV presenter.
func NewCSVPresenter(opts PresenterOptions) *CSVPresenter {
	return &CSVPresenter{
		w:      opts.Writer,
		writer: csv.NewWriter(opts.Writer),
	}
}

func (p *CSVPresenter) flush() error {
	p.writer.Flush()
	return p.writer.Error()
}

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func csvOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return csvTime(*t)
}

func csvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// RenderStatus renders the tool status as CSV.
func (p *CSVPresenter) RenderStatus(status *StatusView) error {
	p.writer.Write([]string{"type", "name", "value"})
	p.writer.Write([]string{"version", "presence", status.Version})
	p.writer.Write([]string{"database", "location", status.Database.Location})
	p.writer.Write([]string{"database", "users", strconv.Itoa(status.Database.UserCount)})
	p.writer.Write([]string{"database", "events", strconv.Itoa(status.Database.EventCount)})
	p.writer.Write([]string{"policy", "timeout_minutes", strconv.Itoa(status.Policy.TimeoutMinutes)})
	p.writer.Write([]string{"config", "retention_days", strconv.Itoa(status.Config.RetentionDays)})

	return p.flush()
}

// RenderUsers renders users as CSV.
func (p *CSVPresenter) RenderUsers(users []*UserView) error {
	p.writer.Write([]string{"id", "name", "email", "role", "active", "created_at", "deleted_at"})

	for _, u := range users {
		p.writer.Write([]string{
			u.ID,
			u.Name,
			u.Email,
			u.Role,
			strconv.FormatBool(u.Active),
			csvTime(u.CreatedAt),
			csvOptionalTime(u.DeletedAt),
		})
	}

	return p.flush()
}

// RenderRoster renders roster rows as CSV.
func (p *CSVPresenter) RenderRoster(roster *RosterView) error {
	p.writer.Write([]string{"id", "name", "email", "status", "last_seen", "today_hours", "week_hours"})

	for _, e := range roster.Employees {
		p.writer.Write([]string{
			e.User.ID,
			e.User.Name,
			e.User.Email,
			e.Status,
			csvOptionalTime(e.LastSeen),
			csvFloat(e.TodayHours),
			csvFloat(e.WeekHours),
		})
	}

	return p.flush()
}

// RenderEmployeeDetail renders the detail report's sessions as CSV.
func (p *CSVPresenter) RenderEmployeeDetail(detail *EmployeeDetailView) error {
	return p.RenderSessions(&detail.SessionsView)
}

// RenderSessions renders sessions as CSV.
func (p *CSVPresenter) RenderSessions(s *SessionsView) error {
	p.writer.Write([]string{"user_id", "start", "end", "duration_minutes"})

	for _, sess := range s.Sessions {
		p.writer.Write([]string{
			s.User.ID,
			csvTime(sess.Start),
			csvTime(sess.End),
			csvFloat(sess.DurationMinutes),
		})
	}

	return p.flush()
}

// RenderEvent renders a recorded event as CSV.
func (p *CSVPresenter) RenderEvent(e *EventView) error {
	p.writer.Write([]string{"id", "user", "timestamp", "status"})
	p.writer.Write([]string{e.ID, e.UserName, csvTime(e.Timestamp), e.Status})
	return p.flush()
}

// RenderOverview renders the per-day chart as CSV.
func (p *CSVPresenter) RenderOverview(o *OverviewView) error {
	p.writer.Write([]string{"date", "hours"})

	for _, d := range o.HoursPerDay {
		p.writer.Write([]string{d.Date, csvFloat(d.Hours)})
	}

	return p.flush()
}

// RenderPolicy renders the timeout policy as CSV.
func (p *CSVPresenter) RenderPolicy(policy *PolicyView) error {
	p.writer.Write([]string{"timeout_minutes", "source"})
	p.writer.Write([]string{strconv.Itoa(policy.TimeoutMinutes), policy.Source})
	return p.flush()
}

// RenderRetention renders retention results as CSV.
func (p *CSVPresenter) RenderRetention(r *RetentionView) error {
	p.writer.Write([]string{"retention_days", "cutoff", "events_to_clean", "deleted", "dry_run"})
	p.writer.Write([]string{
		strconv.Itoa(r.RetentionDays),
		csvTime(r.Cutoff),
		strconv.Itoa(r.EventsToClean),
		strconv.Itoa(r.Deleted),
		strconv.FormatBool(r.DryRun),
	})
	return p.flush()
}

// RenderDoctor renders the doctor check results as CSV.
func (p *CSVPresenter) RenderDoctor(result *DoctorView) error {
	p.writer.Write([]string{"check", "status", "message", "suggestion"})

	for _, check := range result.Checks {
		p.writer.Write([]string{
			check.Name,
			string(check.Status),
			check.Message,
			check.Suggestion,
		})
	}

	return p.flush()
}

// RenderConfig renders the configuration as CSV.
func (p *CSVPresenter) RenderConfig(config *ConfigView) error {
	p.writer.Write([]string{"key", "value"})

	flat := map[string]string{}
	flattenConfig(config.Values, "", flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p.writer.Write([]string{k, flat[k]})
	}

	return p.flush()
}

func flattenConfig(m map[string]interface{}, prefix string, out map[string]string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenConfig(nested, fullKey, out)
			continue
		}
		out[fullKey] = fmt.Sprintf("%v", value)
	}
}

// RenderError renders an error as CSV.
func (p *CSVPresenter) RenderError(err error) error {
	p.writer.Write([]string{"error"})
	p.writer.Write([]string{err.Error()})
	return p.flush()
}

// RenderMessage renders a message as CSV.
func (p *CSVPresenter) RenderMessage(message string) error {
	p.writer.Write([]string{"message"})
	p.writer.Write([]string{message})
	return p.flush()
}

// Ensure CSVPresenter implements Presenter
var _ Presenter = (*CSVPresenter)(nil)

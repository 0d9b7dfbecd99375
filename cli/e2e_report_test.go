package cli_test

import (
	"testing"

	"github.com/safedep/presence/cli"
	"github.com/safedep/presence/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployees(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var roster tui.RosterView
	require.NoError(t, env.runJSON(&roster, "employees"))

	assert.Equal(t, 15, roster.TimeoutMinutes)
	assert.Equal(t, 1, roster.InOffice)
	require.Len(t, roster.Employees, 2)

	alice, bob := roster.Employees[0], roster.Employees[1]
	assert.Equal(t, "Alice", alice.User.Name)
	assert.Equal(t, "IN_OFFICE", alice.Status)
	assert.InDelta(t, 1.1, alice.TodayHours, 1e-9)
	assert.InDelta(t, 1.3, alice.WeekHours, 1e-9)
	require.NotNil(t, alice.LastSeen)
	assert.True(t, at(4, 9, 40).Equal(*alice.LastSeen))

	assert.Equal(t, "Bob", bob.User.Name)
	assert.Equal(t, "OUT_OF_OFFICE", bob.Status)
	assert.Zero(t, bob.TodayHours)
	assert.InDelta(t, 0.3, bob.WeekHours, 1e-9)
}

func TestEmployees_Formats(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		assert func(t *testing.T, stdout string, err error)
	}{
		{
			name:   "table",
			args:   []string{"employees"},
			assert: assertOutputContains("in office"),
		},
		{
			name: "csv",
			args: []string{"employees", "--format", "csv"},
			assert: func(t *testing.T, stdout string, err error) {
				require.NoError(t, err)
				assertValidCSV(2)(t, stdout)
			},
		},
		{
			name: "jsonl",
			args: []string{"employees", "--format", "jsonl"},
			assert: func(t *testing.T, stdout string, err error) {
				require.NoError(t, err)
				assertValidJSONL(t, stdout)
			},
		},
		{
			name: "unknown_format",
			args: []string{"employees", "--format", "xml"},
			assert: func(t *testing.T, _ string, err error) {
				assertExitCode(t, err, cli.ExitInvalidInput)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedOffice(env)

			stdout, _, err := env.run(tt.args...)
			tt.assert(t, stdout, err)
		})
	}
}

func TestEmployees_NoEmployees(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("employees")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No employees found.")
}

func TestEmployee_Detail(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var detail tui.EmployeeDetailView
	require.NoError(t, env.runJSON(&detail, "employee", "alice@example.com"))

	assert.Equal(t, "Alice", detail.User.Name)
	assert.Equal(t, "IN_OFFICE", detail.Status)
	assert.InDelta(t, 1.1, detail.TodayHours, 1e-9)
	assert.InDelta(t, 1.3, detail.WeekHours, 1e-9)
	assert.InDelta(t, 1.3, detail.MonthHours, 1e-9)

	require.Len(t, detail.Sessions, 3)
	assert.True(t, at(3, 9, 0).Equal(detail.Sessions[0].Start))
	assert.True(t, at(4, 9, 55).Equal(detail.Sessions[2].End))
	assert.InDelta(t, 75.0, detail.TotalMinutes, 1e-9)

	require.Len(t, detail.HoursPerDay, 14)
	assert.Equal(t, "2026-03-04", detail.HoursPerDay[13].Date)
	assert.InDelta(t, 1.1, detail.HoursPerDay[13].Hours, 1e-9)
	assert.InDelta(t, 0.2, detail.HoursPerDay[12].Hours, 1e-9)

	assert.Len(t, detail.Events, 7)
}

func TestEmployee_Days(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var detail tui.EmployeeDetailView
	require.NoError(t, env.runJSON(&detail, "employee", "Alice", "--days", "1"))

	require.Len(t, detail.HoursPerDay, 1)
	assert.True(t, at(3, 0, 0).Equal(detail.RangeStart))
	assert.Len(t, detail.Sessions, 3)
}

func TestEmployee_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown_user", []string{"employee", "carol@example.com"}, cli.ExitUserNotFound},
		{"reversed_range", []string{"employee", "Alice", "--from", "2026-03-04", "--to", "2026-03-01"}, cli.ExitInvalidInput},
		{"half_range", []string{"employee", "Alice", "--from", "2026-03-04"}, cli.ExitInvalidInput},
		{"negative_days", []string{"employee", "Alice", "--days", "-3"}, cli.ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedOffice(env)

			_, _, err := env.run(tt.args...)
			assertExitCode(t, err, tt.code)
		})
	}
}

func TestSessions_Range(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var sessions tui.SessionsView
	require.NoError(t, env.runJSON(&sessions, "sessions", "Alice",
		"--from", "2026-03-04 08:20", "--to", "2026-03-04 09:40"))

	require.Len(t, sessions.Sessions, 2)
	assert.True(t, at(4, 8, 20).Equal(sessions.Sessions[0].Start))
	assert.True(t, at(4, 8, 40).Equal(sessions.Sessions[0].End))
	assert.True(t, at(4, 9, 30).Equal(sessions.Sessions[1].Start))
	assert.True(t, at(4, 9, 40).Equal(sessions.Sessions[1].End))
	assert.InDelta(t, 30.0, sessions.TotalMinutes, 1e-9)
}

func TestSessions_CSV(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	stdout, _, err := env.run("sessions", "alice@example.com", "--format", "csv",
		"--from", "2026-03-04 00:00", "--to", "now")
	require.NoError(t, err)
	assertValidCSV(2)(t, stdout)
}

func TestSessions_Table(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	stdout, _, err := env.run("sessions", "Alice")
	require.NoError(t, err)
	assert.Contains(t, stdout, "08:00 - 08:40")
	assert.Contains(t, stdout, "3 sessions")
}

func TestOverview(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var overview tui.OverviewView
	require.NoError(t, env.runJSON(&overview, "overview"))

	assert.Equal(t, 30, overview.Days)
	assert.Equal(t, 1, overview.CurrentInOffice)
	assert.Equal(t, 2, overview.ActiveEmployees)
	assert.InDelta(t, 1.1, overview.TotalHoursToday, 1e-9)
	assert.InDelta(t, 0.5, overview.AverageHoursToday, 1e-9)

	require.Len(t, overview.HoursPerDay, 30)
	last := overview.HoursPerDay[29]
	assert.Equal(t, "2026-03-04", last.Date)
	assert.InDelta(t, 1.1, last.Hours, 1e-9)
	// Alice 10 minutes and Bob 15 minutes yesterday.
	assert.InDelta(t, 0.4, overview.HoursPerDay[28].Hours, 1e-9)
}

func TestOverview_DaysClamped(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var overview tui.OverviewView
	require.NoError(t, env.runJSON(&overview, "overview", "--days", "3"))
	assert.Equal(t, 7, overview.Days)
	assert.Len(t, overview.HoursPerDay, 7)

	require.NoError(t, env.runJSON(&overview, "overview", "--days", "365"))
	assert.Equal(t, 90, overview.Days)
}

func TestOverview_Table(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	stdout, _, err := env.run("overview", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "In office now")
	assert.Contains(t, stdout, "Hours per day (last 7 days)")
	assert.Contains(t, stdout, "2026-03-04")
}

func TestWatch_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"zero_limit", []string{"watch", "--limit", "0"}, cli.ExitInvalidInput},
		{"bad_since", []string{"watch", "--since", "yesterday-ish"}, cli.ExitInvalidInput},
		{"unknown_user", []string{"watch", "--user", "carol"}, cli.ExitUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedOffice(env)

			_, _, err := env.run(tt.args...)
			assertExitCode(t, err, tt.code)
		})
	}
}

func TestDashboard_InvalidDays(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("dashboard", "--days", "14")
	assertExitCode(t, err, cli.ExitInvalidInput)
}

package cli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/safedep/presence/cli"
	"github.com/safedep/presence/storage"
	"github.com/safedep/presence/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy(t *testing.T) {
	env := newTestEnv(t)

	var policy tui.PolicyView
	require.NoError(t, env.runJSON(&policy, "policy", "get"))
	assert.Equal(t, 15, policy.TimeoutMinutes)
	assert.Equal(t, "default", policy.Source)

	require.NoError(t, env.runJSON(&policy, "policy", "set", "20"))
	assert.Equal(t, 20, policy.TimeoutMinutes)
	assert.Equal(t, "stored", policy.Source)

	require.NoError(t, env.runJSON(&policy, "policy", "get"))
	assert.Equal(t, 20, policy.TimeoutMinutes)
}

func TestPolicy_SetInvalid(t *testing.T) {
	for _, value := range []string{"0", "-5", "abc", "2000"} {
		t.Run(value, func(t *testing.T) {
			env := newTestEnv(t)

			_, _, err := env.run("policy", "set", value)
			assertExitCode(t, err, cli.ExitInvalidInput)
		})
	}
}

func TestPolicy_ChangesReports(t *testing.T) {
	env := newTestEnv(t)
	// Two pings 20 minutes apart: one session at a 20 minute timeout, two
	// at the default 15.
	env.seedUser("Alice", "alice@example.com", in(at(4, 9, 0)), in(at(4, 9, 20)))

	var sessions tui.SessionsView
	require.NoError(t, env.runJSON(&sessions, "sessions", "Alice"))
	assert.Len(t, sessions.Sessions, 2)

	_, _, err := env.run("policy", "set", "20")
	require.NoError(t, err)

	require.NoError(t, env.runJSON(&sessions, "sessions", "Alice"))
	require.Len(t, sessions.Sessions, 1)
	assert.True(t, at(4, 9, 0).Equal(sessions.Sessions[0].Start))
	assert.True(t, at(4, 9, 40).Equal(sessions.Sessions[0].End))
}

func TestRetention(t *testing.T) {
	env := newTestEnv(t)
	old := testNow.AddDate(0, 0, -100)
	env.seedUser("Alice", "alice@example.com",
		in(old), out(old.Add(30*time.Minute)),
		in(at(4, 9, 0)),
	)

	var status tui.RetentionView
	require.NoError(t, env.runJSON(&status, "retention", "status"))
	assert.True(t, status.Enabled)
	assert.Equal(t, 90, status.RetentionDays)
	assert.Equal(t, 2, status.EventsToClean)
	assert.True(t, testNow.AddDate(0, 0, -90).Equal(status.Cutoff))

	var dry tui.RetentionView
	require.NoError(t, env.runJSON(&dry, "retention", "cleanup", "--dry-run"))
	assert.True(t, dry.DryRun)
	assert.Equal(t, 2, dry.EventsToClean)
	assert.Zero(t, dry.Deleted)

	var cleaned tui.RetentionView
	require.NoError(t, env.runJSON(&cleaned, "retention", "cleanup"))
	assert.True(t, cleaned.Cleaned)
	assert.Equal(t, 2, cleaned.Deleted)

	env.seedStore(func(ctx context.Context, store storage.Store) {
		info, err := store.Info(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, info.EventCount)
	})
}

func TestRetention_Disabled(t *testing.T) {
	tmp := t.TempDir()
	env := newTestEnvWithConfig(t, "storage:\n  path: "+filepath.Join(tmp, "test.db")+
		"\n  retention_days: 0\ndisplay:\n  timezone: utc\n")

	var view tui.RetentionView
	require.NoError(t, env.runJSON(&view, "retention", "cleanup"))
	assert.False(t, view.Enabled)
	assert.False(t, view.Cleaned)
	assert.True(t, view.Cutoff.IsZero())
}

func TestConfig(t *testing.T) {
	t.Run("show", func(t *testing.T) {
		env := newTestEnv(t)

		stdout, _, err := env.run("config", "show")
		require.NoError(t, err)
		assert.Contains(t, stdout, "session_timeout_minutes")
		assert.Contains(t, stdout, env.configPath)
	})

	t.Run("show_csv", func(t *testing.T) {
		env := newTestEnv(t)

		stdout, _, err := env.run("--format", "csv", "config", "show")
		require.NoError(t, err)
		assert.Contains(t, stdout, "presence.session_timeout_minutes,15")
	})

	t.Run("get_default", func(t *testing.T) {
		env := newTestEnv(t)

		stdout, _, err := env.run("config", "get", "presence.session_timeout_minutes")
		require.NoError(t, err)
		assert.Equal(t, "15\n", stdout)
	})

	t.Run("get_unknown", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.run("config", "get", "presence.nothing")
		assertExitCode(t, err, cli.ExitInvalidInput)
	})

	t.Run("set", func(t *testing.T) {
		env := newTestEnv(t)

		stdout, _, err := env.run("config", "set", "presence.overview_days", "14")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Set presence.overview_days = 14")

		stdout, _, err = env.run("config", "get", "presence.overview_days")
		require.NoError(t, err)
		assert.Equal(t, "14\n", stdout)

		// Keys from the original file survive the rewrite.
		stdout, _, err = env.run("config", "get", "storage.path")
		require.NoError(t, err)
		assert.Equal(t, env.dbPath+"\n", stdout)
	})

	t.Run("set_invalid", func(t *testing.T) {
		tests := []struct {
			key   string
			value string
		}{
			{"presence.lookback_hours", "12"},
			{"presence.session_timeout_minutes", "0"},
			{"presence.week_start", "someday"},
			{"display.timezone", "Nowhere/Special"},
			{"display.colors", "rainbow"},
			{"presence.unknown", "1"},
		}
		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				env := newTestEnv(t)
				before, err := os.ReadFile(env.configPath)
				require.NoError(t, err)

				_, _, err = env.run("config", "set", tt.key, tt.value)
				assertExitCode(t, err, cli.ExitInvalidInput)

				after, err := os.ReadFile(env.configPath)
				require.NoError(t, err)
				assert.Equal(t, string(before), string(after))
			})
		}
	})

	t.Run("reset", func(t *testing.T) {
		env := newTestEnv(t)

		stdout, _, err := env.run("config", "reset")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration reset to defaults.")

		_, err = os.Stat(env.configPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("broken_config", func(t *testing.T) {
		env := newTestEnvWithConfig(t, "presence:\n  lookback_hours: 1\n")

		_, _, err := env.run("employees")
		assertExitCode(t, err, cli.ExitConfig)

		// show and reset still work on a config that fails validation.
		_, _, err = env.run("config", "show")
		require.NoError(t, err)
		_, _, err = env.run("config", "reset")
		require.NoError(t, err)
	})
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var status tui.StatusView
	require.NoError(t, env.runJSON(&status, "status"))

	assert.Equal(t, env.dbPath, status.Database.Location)
	assert.Equal(t, 2, status.Database.UserCount)
	assert.Equal(t, 8, status.Database.EventCount)
	assert.True(t, at(3, 9, 0).Equal(status.Database.OldestEvent))
	assert.True(t, at(4, 9, 40).Equal(status.Database.NewestEvent))

	assert.Equal(t, 15, status.Policy.TimeoutMinutes)
	assert.Equal(t, "UTC", status.Config.Timezone)
	assert.Equal(t, "Monday", status.Config.WeekStart)
	assert.Equal(t, 24, status.Config.LookbackHours)
	assert.Equal(t, 90, status.Config.RetentionDays)
	assert.Zero(t, status.Config.EventsToClean)
}

func TestStatus_Table(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "presence dev")
	assert.Contains(t, stdout, env.dbPath)
}

func TestDoctor(t *testing.T) {
	env := newTestEnv(t)
	seedOffice(env)

	var result tui.DoctorView
	require.NoError(t, env.runJSON(&result, "doctor"))

	assert.True(t, result.AllOK)
	require.Len(t, result.Checks, 5)
	for _, check := range result.Checks {
		assert.Equal(t, tui.CheckOK, check.Status, check.Name)
	}
}

func TestDoctor_NoEmployees(t *testing.T) {
	env := newTestEnv(t)

	var result tui.DoctorView
	require.NoError(t, env.runJSON(&result, "doctor"))

	assert.True(t, result.AllOK)
	last := result.Checks[len(result.Checks)-1]
	assert.Equal(t, "Employees", last.Name)
	assert.Equal(t, tui.CheckWarn, last.Status)
}

func TestDoctor_BrokenConfig(t *testing.T) {
	env := newTestEnvWithConfig(t, "display:\n  colors: rainbow\n")

	var result tui.DoctorView
	require.NoError(t, env.runJSON(&result, "doctor"))

	assert.False(t, result.AllOK)
	require.Len(t, result.Checks, 1)
	assert.Equal(t, tui.CheckFail, result.Checks[0].Status)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "presence dev")
	assert.Contains(t, stdout, "commit: none")
}

func TestVersion_Check(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v0.4.0", "html_url": "https://github.com/safedep/presence/releases/tag/v0.4.0"}`))
	}))
	defer server.Close()

	env := newTestEnv(t)
	cli.SetReleaseBaseURL(t, server.URL)

	stdout, _, err := env.run("version", "--check")
	require.NoError(t, err)
	// A dev build is never reported as outdated.
	assert.Contains(t, stdout, "Latest release is v0.4.0.")
}

func TestVersion_CheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	env := newTestEnv(t)
	cli.SetReleaseBaseURL(t, server.URL)

	_, _, err := env.run("version", "--check")
	assertExitCode(t, err, cli.ExitGeneral)
}

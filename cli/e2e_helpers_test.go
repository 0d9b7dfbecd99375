package cli_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/safedep/presence/cli"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is Wednesday 2026-03-04 10:00 UTC. The week starts on Monday
// 2026-03-02.
var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

type testEnv struct {
	t          *testing.T
	tmpDir     string
	dbPath     string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, "")
}

func newTestEnvWithConfig(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	cli.SetNow(t, testNow)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	configPath := filepath.Join(tmpDir, "config.yaml")

	if configYAML == "" {
		configYAML = fmt.Sprintf(`storage:
  path: %s
  retention_days: 90
presence:
  week_start: monday
display:
  colors: never
  timezone: utc
`, dbPath)
	}

	err := os.WriteFile(configPath, []byte(configYAML), 0o600)
	require.NoError(t, err)

	return &testEnv{
		t:          t,
		tmpDir:     tmpDir,
		dbPath:     dbPath,
		configPath: configPath,
	}
}

func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	env.t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)

	fullArgs := append([]string{"--config", env.configPath, "--no-color"}, args...)
	rootCmd.SetArgs(fullArgs)
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

// runJSON runs a command with --format json and decodes its output into v.
func (env *testEnv) runJSON(v any, args ...string) error {
	env.t.Helper()

	stdout, _, err := env.run(append([]string{"--format", "json"}, args...)...)
	if err != nil {
		return err
	}
	require.NoError(env.t, json.Unmarshal([]byte(stdout), v), stdout)
	return nil
}

func (env *testEnv) openStore() (storage.Store, func()) {
	env.t.Helper()

	store, err := storage.NewSQLiteStore(env.dbPath, storage.WithDefaultSessionTimeout(15))
	require.NoError(env.t, err)
	err = store.Init(context.Background())
	require.NoError(env.t, err)

	return store, func() {
		err := store.Close()
		require.NoError(env.t, err)
	}
}

func (env *testEnv) seedStore(fn func(ctx context.Context, store storage.Store)) {
	env.t.Helper()

	store, cleanup := env.openStore()
	defer cleanup()

	fn(context.Background(), store)
}

type ping struct {
	at     time.Time
	status events.Status
}

func in(t time.Time) ping  { return ping{t, events.StatusInOffice} }
func out(t time.Time) ping { return ping{t, events.StatusOutOfOffice} }

// seedUser creates an employee with the given pings.
func (env *testEnv) seedUser(name, email string, pings ...ping) *events.User {
	env.t.Helper()

	user := events.NewUser(name, email, events.RoleEmployee)
	env.seedStore(func(ctx context.Context, store storage.Store) {
		require.NoError(env.t, store.SaveUser(ctx, user))
		for _, p := range pings {
			require.NoError(env.t, store.SaveEvent(ctx, events.NewEvent(user.ID, p.status, p.at)))
		}
	})
	return user
}

// seedOffice creates the standard fixture:
//
//	Alice: yesterday 09:00-09:10, today 08:00-08:40 and 09:30-09:55 (in office)
//	Bob:   yesterday 15:00-15:15 (out of office)
func seedOffice(env *testEnv) {
	env.seedUser("Alice", "alice@example.com",
		in(at(3, 9, 0)), out(at(3, 9, 10)),
		in(at(4, 8, 0)), in(at(4, 8, 10)), out(at(4, 8, 40)),
		in(at(4, 9, 30)), in(at(4, 9, 40)),
	)
	env.seedUser("Bob", "bob@example.com", in(at(3, 15, 0)))
}

// --- Assertion helpers ---

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)

	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "error %v carries no exit code", err)
	assert.Equal(t, code, coder.ExitCode(), err.Error())
}

func assertOutputContains(substr string) func(*testing.T, string, error) {
	return func(t *testing.T, stdout string, err error) {
		t.Helper()
		assert.NoError(t, err)
		assert.Contains(t, stdout, substr)
	}
}

func assertValidJSONL(t *testing.T, stdout string) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.NotEmpty(t, lines)
	for _, line := range lines {
		var obj json.RawMessage
		assert.NoError(t, json.Unmarshal([]byte(line), &obj), "invalid JSONL line: %s", line)
	}
}

func assertValidCSV(expectedRows int) func(*testing.T, string) {
	return func(t *testing.T, stdout string) {
		t.Helper()
		r := csv.NewReader(strings.NewReader(stdout))
		records, err := r.ReadAll()
		assert.NoError(t, err)
		// +1 for header row
		assert.Len(t, records, expectedRows+1)
	}
}

package cli

import (
	"testing"
	"time"
)

// SetNow pins the clock of every command for the duration of a test.
func SetNow(t testing.TB, now time.Time) {
	t.Helper()

	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}

// SetReleaseBaseURL points version --check at a test server.
func SetReleaseBaseURL(t testing.TB, url string) {
	t.Helper()

	prev := releaseBaseURL
	releaseBaseURL = url
	t.Cleanup(func() { releaseBaseURL = prev })
}
